package msdoc

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/TalentFormula/msdoc/boundary"
	"github.com/TalentFormula/msdoc/driver"
	"github.com/TalentFormula/msdoc/formatting"
	"github.com/TalentFormula/msdoc/streams"
	"github.com/TalentFormula/msdoc/structures"
	"github.com/TalentFormula/msdoc/style"
)

// textSink renders the main document story into plain text, turning
// paragraph and cell marks into newlines the way a plain-text export
// of a word processor document conventionally does; footnotes and
// headers are decoded but not appended here (callers after richer
// output should walk GetFormattedText's runs instead).
type textSink struct {
	buf bytes.Buffer
}

func (s *textSink) Char(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story == driver.StoryMain {
		s.buf.WriteRune(r)
	}
	return nil
}

func (s *textSink) Mark(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story != driver.StoryMain {
		return nil
	}
	switch r {
	case 0x0D, 0x07: // paragraph mark, table cell/row mark
		s.buf.WriteByte('\n')
	case 0x09:
		s.buf.WriteByte('\t')
	}
	return nil
}

// Text extracts the plain text content of the main document story.
func (d *Document) Text() (string, error) {
	drv, err := d.buildDriver()
	if err != nil {
		return "", err
	}

	sink := &textSink{}
	if err := drv.Run(sink); err != nil {
		return "", fmt.Errorf("msdoc: %w", err)
	}
	return sink.buf.String(), nil
}

// runSink accumulates the main document story into TextRuns, starting
// a new run whenever the composed character properties change - the
// run-splitting behavior GetFormattedText exposes.
type runSink struct {
	runs    []*TextRun
	current *formatting.CharacterProperties
	text    bytes.Buffer
	start   structures.CP
	cp      structures.CP
}

func (s *runSink) flush() {
	if s.text.Len() == 0 {
		return
	}
	s.runs = append(s.runs, &TextRun{
		Text:      s.text.String(),
		StartPos:  uint32(s.start),
		EndPos:    uint32(s.cp),
		CharProps: s.current,
	})
	s.text.Reset()
}

func (s *runSink) append(story driver.Story, cp structures.CP, r rune, chp *formatting.CharacterProperties) {
	if story != driver.StoryMain {
		return
	}
	if s.current == nil || !reflect.DeepEqual(s.current, chp) {
		s.flush()
		s.current = chp
		s.start = cp
	}
	s.text.WriteRune(r)
	s.cp = cp + 1
}

func (s *runSink) Char(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	s.append(story, cp, r, chp)
	return nil
}

func (s *runSink) Mark(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	switch r {
	case 0x0D, 0x07:
		s.append(story, cp, '\n', chp)
	case 0x09:
		s.append(story, cp, '\t', chp)
	}
	return nil
}

// hyperlinkSink tracks the 0x0013/0x0014/0x0015 field control marks
// (spec 6.2) across the main document story, capturing the field
// instruction text and display text bracketed by them and emitting a
// HyperlinkField for every field whose instruction names HYPERLINK.
type hyperlinkSink struct {
	links       []*structures.HyperlinkField
	inField     bool
	inDisplay   bool
	fieldCode   bytes.Buffer
	displayText bytes.Buffer
	start       structures.CP
}

func (s *hyperlinkSink) Char(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story != driver.StoryMain {
		return nil
	}
	switch {
	case s.inDisplay:
		s.displayText.WriteRune(r)
	case s.inField:
		s.fieldCode.WriteRune(r)
	}
	return nil
}

func (s *hyperlinkSink) Mark(story driver.Story, cp structures.CP, r rune, pap *formatting.ParagraphProperties, chp *formatting.CharacterProperties) error {
	if story != driver.StoryMain {
		return nil
	}
	switch r {
	case 0x0013: // hyperlink/field start
		s.inField = true
		s.inDisplay = false
		s.fieldCode.Reset()
		s.displayText.Reset()
		s.start = cp
	case 0x0014: // field separator: instruction ends, display text begins
		if s.inField {
			s.inDisplay = true
		}
	case 0x0015: // field end
		if s.inField {
			url, codeDisplay := structures.ParseHyperlinkFieldCode(s.fieldCode.String())
			if url != "" {
				displayText := s.displayText.String()
				if displayText == "" {
					displayText = codeDisplay
				}
				s.links = append(s.links, &structures.HyperlinkField{
					URL:         url,
					DisplayText: displayText,
					Start:       s.start,
					End:         cp,
				})
			}
		}
		s.inField = false
		s.inDisplay = false
	}
	return nil
}

// GetHyperlinks extracts every HYPERLINK field in the main document
// story by walking the 0x0013/0x0014/0x0015 field control marks.
func (d *Document) GetHyperlinks() ([]*structures.HyperlinkField, error) {
	drv, err := d.buildDriver()
	if err != nil {
		return nil, err
	}
	sink := &hyperlinkSink{}
	if err := drv.Run(sink); err != nil {
		return nil, fmt.Errorf("msdoc: %w", err)
	}
	return sink.links, nil
}

// buildDriver parses the piece table, the paragraph bin table, and
// (when present) the style sheet, and wires them into a driver.Driver
// ready to walk the document's text stories.
func (d *Document) buildDriver() (*driver.Driver, error) {
	tableStreamName := d.fib.GetTableStreamName()
	tableStreamData, err := d.reader.ReadStream(tableStreamName)
	if err != nil {
		return nil, fmt.Errorf("msdoc: could not read %s stream: %w", tableStreamName, err)
	}
	wordDocument, err := d.reader.ReadStream("WordDocument")
	if err != nil {
		return nil, fmt.Errorf("msdoc: could not read WordDocument stream: %w", err)
	}
	tableStream := streams.NewTableStream(tableStreamData, tableStreamName)

	rg := d.fib.RgFcLcb
	pieces, err := tableStream.GetPieceTable(rg.FcClx, rg.LcbClx)
	if err != nil {
		return nil, fmt.Errorf("msdoc: %w", err)
	}

	btePapx, err := tableStream.GetParagraphFormattingTable(rg.FcPlcfbtePapx, rg.LcbPlcfbtePapx)
	if err != nil {
		return nil, fmt.Errorf("msdoc: %w", err)
	}
	if btePapx == nil {
		return nil, fmt.Errorf("msdoc: document has no PlcBtePapx")
	}

	bteChpx, err := tableStream.GetCharacterFormattingTable(rg.FcPlcfbteChpx, rg.LcbPlcfbteChpx)
	if err != nil {
		return nil, fmt.Errorf("msdoc: %w", err)
	}

	var styleLookup formatting.StyleLookup
	if stshBytes, err := tableStream.GetStyleSheet(rg.FcStshf, rg.LcbStshf); err == nil && stshBytes != nil {
		if sheet, err := style.ParseSTSH(stshBytes); err == nil {
			styleLookup = sheet.Lookup
		}
	}

	boundaryDoc := boundary.NewDoc(wordDocument, pieces, btePapx, bteChpx, styleLookup)
	if sections, err := tableStream.GetSectionTable(rg.FcPlcfsed, rg.LcbPlcfsed); err == nil && sections != nil {
		boundaryDoc.WithSections(sections)
	}
	bounds := driver.NewBounds(d.fib.FibRgLw.CcpText, d.fib.FibRgLw.CcpFtn, d.fib.FibRgLw.CcpHdd)

	return driver.New(wordDocument, pieces, boundaryDoc, bounds), nil
}

// Metadata extracts high-level metadata from the document's OLE
// property-set streams (\005SummaryInformation and
// \005DocumentSummaryInformation).
func (d *Document) Metadata() Metadata {
	meta, err := d.metadataExtractor.ExtractMetadata()
	if err != nil {
		if d.logger != nil {
			d.logger.Warn("msdoc: failed to extract metadata", "error", err)
		}
		return Metadata{}
	}
	return *meta
}
