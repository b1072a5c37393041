package notewriter

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	noteFont     = "Times New Roman"
	bodySize     = 12
	titleSize    = 16
	sectionColor = "000000"
)

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	boldSpan    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	bulletLine  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	// "Behavior:" or "Subjective (S):" at the start of a line
	sectionLine = regexp.MustCompile(`^([A-Z][A-Za-z ]{2,30}(?: \([A-Z]\))?):\s*(.*)$`)
)

type noteDoc struct {
	doc *docx.RootDoc
}

// markdownToDocx renders a generated note as a docx file. Section labels
// and markdown headings become bold runs; everything else is body text.
func markdownToDocx(title, note, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}
	nd := noteDoc{doc: doc}

	nd.run(nd.paragraph(), title, titleSize, true)
	for _, line := range strings.Split(note, "\n") {
		nd.addLine(strings.TrimSpace(line))
	}

	return doc.SaveTo(outputPath)
}

func (nd noteDoc) addLine(line string) {
	if line == "" || line == "---" {
		return
	}

	if m := headingLine.FindStringSubmatch(line); m != nil {
		nd.run(nd.paragraph(), m[2], headingSize(len(m[1])), true)
		return
	}
	if m := bulletLine.FindStringSubmatch(line); m != nil {
		nd.body(nd.paragraph(), "• "+m[1])
		return
	}
	if m := sectionLine.FindStringSubmatch(line); m != nil {
		p := nd.paragraph()
		nd.run(p, m[1]+":", bodySize, true)
		if m[2] != "" {
			nd.body(p, " "+m[2])
		}
		return
	}
	nd.body(nd.paragraph(), line)
}

func (nd noteDoc) paragraph() *docx.Paragraph {
	return nd.doc.AddParagraph("")
}

func (nd noteDoc) run(p *docx.Paragraph, text string, size uint64, bold bool) {
	r := p.AddText(stripInline(text)).Font(noteFont).Size(size).Color(sectionColor)
	if bold {
		r.Bold(true)
	}
}

// body writes text, turning **spans** into bold runs.
func (nd noteDoc) body(p *docx.Paragraph, text string) {
	plain := boldSpan.Split(text, -1)
	bold := boldSpan.FindAllStringSubmatch(text, -1)

	for i, s := range plain {
		if s != "" {
			nd.run(p, s, bodySize, false)
		}
		if i < len(bold) {
			nd.run(p, bold[i][1], bodySize, true)
		}
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return titleSize
	case 2:
		return 14
	default:
		return 13
	}
}

var inlineMarkup = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInline(s string) string {
	return inlineMarkup.Replace(s)
}
