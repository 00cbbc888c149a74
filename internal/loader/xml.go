package loader

import (
	"fmt"
	"io"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/Interline/core/token"
)

// Token XML layout:
//
//	<stream>
//	  <chapter n="1">
//	    <verse n="1" ref="3JN 1:1">
//	      <w id="..." occ="1" total="1" strong="G4245" lemma="..."
//	         morph="..." srcid="..." srcocc="1" src="...">surface</w>
//	      <pc>,</pc>
//	    </verse>
//	  </chapter>
//	</stream>
//
// Every attribute except the verse number is optional; omitted fields are
// derived by Finish.
var (
	chapterExpr = xpath.MustCompile("//chapter")
	verseExpr   = xpath.MustCompile("./verse")
	tokenExpr   = xpath.MustCompile("./*")
)

// LoadXML reads a tokenized chapter stream from token XML.
func LoadXML(r io.Reader) ([]*token.ProcessedChapter, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}

	var chapters []*token.ProcessedChapter
	for _, chNode := range xmlquery.QuerySelectorAll(doc, chapterExpr) {
		ch := &token.ProcessedChapter{
			Number: intAttr(chNode, "n"),
		}
		for _, vNode := range xmlquery.QuerySelectorAll(chNode, verseExpr) {
			verse, err := parseVerse(vNode)
			if err != nil {
				return nil, err
			}
			ch.Verses = append(ch.Verses, verse)
		}
		chapters = append(chapters, ch)
	}
	Finish(chapters)
	return chapters, nil
}

func parseVerse(vNode *xmlquery.Node) (*token.ProcessedVerse, error) {
	verse := &token.ProcessedVerse{
		Number:    intAttr(vNode, "n"),
		Reference: vNode.SelectAttr("ref"),
	}
	if verse.Number == 0 {
		return nil, fmt.Errorf("verse element missing n attribute")
	}

	for _, tNode := range xmlquery.QuerySelectorAll(vNode, tokenExpr) {
		switch tNode.Data {
		case "w":
			wt := &token.WordToken{
				UniqueID:         tNode.SelectAttr("id"),
				Content:          tNode.InnerText(),
				Type:             token.TypeWord,
				Occurrence:       intAttr(tNode, "occ"),
				TotalOccurrences: intAttr(tNode, "total"),
			}
			if a := alignmentFromAttrs(tNode); a != nil {
				wt.Alignment = a
			}
			verse.WordTokens = append(verse.WordTokens, wt)
		case "pc":
			verse.WordTokens = append(verse.WordTokens, &token.WordToken{
				Content: tNode.InnerText(),
				Type:    token.TypePunctuation,
			})
		}
	}
	return verse, nil
}

func alignmentFromAttrs(n *xmlquery.Node) *token.Alignment {
	a := &token.Alignment{
		SourceWordID:     n.SelectAttr("srcid"),
		SourceContent:    n.SelectAttr("src"),
		SourceOccurrence: intAttr(n, "srcocc"),
		Strong:           n.SelectAttr("strong"),
		Lemma:            n.SelectAttr("lemma"),
		Morph:            n.SelectAttr("morph"),
	}
	if a.SourceWordID == "" && a.SourceContent == "" && a.SourceOccurrence == 0 &&
		a.Strong == "" && a.Lemma == "" && a.Morph == "" {
		return nil
	}
	return a
}

func intAttr(n *xmlquery.Node, name string) int {
	v, err := strconv.Atoi(n.SelectAttr(name))
	if err != nil {
		return 0
	}
	return v
}
