package service

import (
	"io"
	"strings"

	"github.com/fumiama/go-docx"
)

var boldPrefixes = []string{
	"AND WHEREAS",
	"WHEREAS",
	"I/MY CLIENT HEREBY CALL UPON YOU",
	"I HEREBY CALL UPON YOU",
	"MY CLIENT HEREBY",
	"PLEASE TAKE NOTICE",
	"FAILING WHICH",
	"TAKE NOTICE",
	"NOW THEREFORE",
}

var subHeaderPrefixes = []string{
	"SUBJECT:", "TO:", "FROM:", "DATE:", "REF", "Ref",
	"SENT VIA", "Sent via", "CC:", "Encl:",
}

func isHeaderLine(line string) bool {
	return strings.HasPrefix(line, "LEGAL NOTICE") || strings.HasPrefix(line, "WITHOUT PREJUDICE")
}

func isSubHeaderLine(line string) bool {
	for _, prefix := range subHeaderPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func boldPrefix(line string) string {
	for _, prefix := range boldPrefixes {
		if strings.HasPrefix(line, prefix) {
			return prefix
		}
	}
	return ""
}

// RenderLegalNotice lays out a generated legal notice as a .docx document.
// Headers are centered, WHEREAS-style openers are bolded, everything else
// is justified body text.
func RenderLegalNotice(letter string, out io.Writer) error {
	doc := docx.New().WithDefaultTheme()

	for _, line := range strings.Split(letter, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			doc.AddParagraph()
			continue
		}

		switch {
		case isHeaderLine(line):
			p := doc.AddParagraph().Justification("center")
			p.AddText(line).Bold().Size("32")

		case isSubHeaderLine(line):
			p := doc.AddParagraph()
			p.AddText(line).Bold().Size("22")

		default:
			if prefix := boldPrefix(line); prefix != "" {
				p := doc.AddParagraph().Justification("both")
				p.AddText(prefix).Bold().Size("22")
				p.AddText(line[len(prefix):]).Size("22")
				continue
			}
			p := doc.AddParagraph().Justification("both")
			p.AddText(line).Size("22")
		}
	}

	footer := doc.AddParagraph().Justification("center")
	footer.AddText("Generated by LexAI | For professional legal advice, consult a qualified advocate").
		Italic().Size("16").Color("666666")

	_, err := doc.WriteTo(out)
	return err
}
