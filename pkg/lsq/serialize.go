package lsq

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// Column lists of each tabular section. These are fixed by the platform's
// import schema and never vary with the question content.
var (
	questionFields = []string{
		"qid", "parent_qid", "sid", "gid", "type", "title", "preg", "other",
		"mandatory", "encrypted", "question_order", "scale_id", "same_default",
		"relevance", "modulename",
	}
	l10nFields       = []string{"id", "qid", "question", "help", "script", "language"}
	attributeFields  = []string{"qid", "attribute", "value", "language"}
	answerFields     = []string{"qid", "code", "sortorder", "assessment_value", "scale_id"}
	answerL10nFields = []string{"id", "aid", "answer", "language"}
)

type document struct {
	XMLName    xml.Name          `xml:"document"`
	DocType    string            `xml:"LimeSurveyDocType"`
	DBVersion  int               `xml:"DBVersion"`
	Languages  []string          `xml:"languages>language"`
	Questions  questionsSection  `xml:"questions"`
	L10ns      l10nsSection      `xml:"question_l10ns"`
	Attributes *attributeSection `xml:"question_attributes,omitempty"`
	Answers    *answersSection   `xml:"answers,omitempty"`
	AnswerL10n *answerL10nSect   `xml:"answer_l10ns,omitempty"`
}

type questionsSection struct {
	Fields []string      `xml:"fields>fieldname"`
	Rows   []questionRow `xml:"rows>row"`
}

type questionRow struct {
	QID           int    `xml:"qid"`
	ParentQID     int    `xml:"parent_qid"`
	SID           int    `xml:"sid"`
	GID           int    `xml:"gid"`
	Type          string `xml:"type"`
	Title         string `xml:"title"`
	Preg          string `xml:"preg"`
	Other         string `xml:"other"`
	Mandatory     string `xml:"mandatory"`
	Encrypted     string `xml:"encrypted"`
	QuestionOrder int    `xml:"question_order"`
	ScaleID       int    `xml:"scale_id"`
	SameDefault   int    `xml:"same_default"`
	Relevance     string `xml:"relevance"`
	ModuleName    string `xml:"modulename"`
}

type l10nsSection struct {
	Fields []string  `xml:"fields>fieldname"`
	Rows   []l10nRow `xml:"rows>row"`
}

type l10nRow struct {
	ID       int    `xml:"id"`
	QID      int    `xml:"qid"`
	Question string `xml:"question"`
	Help     string `xml:"help"`
	Script   string `xml:"script"`
	Language string `xml:"language"`
}

type attributeSection struct {
	Fields []string       `xml:"fields>fieldname"`
	Rows   []attributeRow `xml:"rows>row"`
}

type attributeRow struct {
	QID       int    `xml:"qid"`
	Attribute string `xml:"attribute"`
	Value     string `xml:"value"`
	Language  string `xml:"language"`
}

type answersSection struct {
	Fields []string    `xml:"fields>fieldname"`
	Rows   []answerRow `xml:"rows>row"`
}

type answerRow struct {
	QID             int    `xml:"qid"`
	Code            string `xml:"code"`
	SortOrder       int    `xml:"sortorder"`
	AssessmentValue int    `xml:"assessment_value"`
	ScaleID         int    `xml:"scale_id"`
}

type answerL10nSect struct {
	Fields []string        `xml:"fields>fieldname"`
	Rows   []answerL10nRow `xml:"rows>row"`
}

type answerL10nRow struct {
	ID       int    `xml:"id"`
	AID      int    `xml:"aid"`
	Answer   string `xml:"answer"`
	Language string `xml:"language"`
}

// Option configures serialization.
type Option func(*config)

type config struct {
	dbVersion int
}

// WithDBVersion overrides the database version written into the document.
func WithDBVersion(version int) Option {
	return func(c *config) {
		c.dbVersion = version
	}
}

// LSQ serializes the question into an LSQ document and returns its bytes.
// Serialization is pure: calling it twice on the same value produces
// byte-identical output.
func (q *Question) LSQ(opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := q.WriteLSQ(&buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLSQ serializes the question as an LSQ document to w. The receiver is
// the single top-level question (identifier 1); its subquestions get
// identifiers 2..N in slice order.
func (q *Question) WriteLSQ(w io.Writer, opts ...Option) error {
	cfg := config{dbVersion: DefaultDBVersion}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := document{
		DocType:   "Question",
		DBVersion: cfg.dbVersion,
		Languages: q.languages(),
		Questions: q.buildQuestions(),
		L10ns:     q.buildL10ns(),
	}
	if len(q.Attributes) > 0 {
		doc.Attributes = q.buildAttributes()
	}
	if len(q.AnswerOptions) > 0 {
		answers, answerL10ns := q.buildAnswers()
		doc.Answers = answers
		doc.AnswerL10n = answerL10ns
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "could not write XML header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "could not marshal LSQ document")
	}
	return errors.Wrap(enc.Close(), "could not flush LSQ document")
}

// languages returns the declared language list in the order of the top-level
// question's localizations.
func (q *Question) languages() []string {
	langs := make([]string, 0, len(q.L10ns))
	for _, l10n := range q.L10ns {
		langs = append(langs, l10n.Language)
	}
	return langs
}

func (q *Question) buildQuestions() questionsSection {
	rows := make([]questionRow, 0, len(q.Subquestions)+1)
	rows = append(rows, q.row(1, 0, 1))
	for i, sq := range q.Subquestions {
		rows = append(rows, sq.row(i+2, 1, i+1))
	}
	return questionsSection{Fields: questionFields, Rows: rows}
}

// row renders one questions-table row. Boolean flags become Y/N markers and
// an unset relevance becomes the always-true expression.
func (q *Question) row(qid int, parentQID int, order int) questionRow {
	relevance := q.Relevance
	if relevance == "" {
		relevance = "1"
	}
	return questionRow{
		QID:           qid,
		ParentQID:     parentQID,
		Type:          q.Type,
		Title:         q.Title,
		Preg:          q.Preg,
		Other:         yesNo(q.Other),
		Mandatory:     yesNo(q.Mandatory),
		Encrypted:     yesNo(q.Encrypted),
		QuestionOrder: order,
		ScaleID:       q.ScaleID,
		Relevance:     relevance,
	}
}

// buildL10ns emits localization rows question-first then subquestions in
// order, each in its own language order, with one document-wide row counter.
func (q *Question) buildL10ns() l10nsSection {
	var rows []l10nRow
	rowID := 1
	for _, l10n := range q.L10ns {
		rows = append(rows, l10nRow{
			ID:       rowID,
			QID:      1,
			Question: l10n.Question,
			Help:     l10n.Help,
			Script:   l10n.Script,
			Language: l10n.Language,
		})
		rowID++
	}
	for i, sq := range q.Subquestions {
		for _, l10n := range sq.L10ns {
			rows = append(rows, l10nRow{
				ID:       rowID,
				QID:      i + 2,
				Question: l10n.Question,
				Help:     l10n.Help,
				Script:   l10n.Script,
				Language: l10n.Language,
			})
			rowID++
		}
	}
	return l10nsSection{Fields: l10nFields, Rows: rows}
}

// buildAttributes emits attribute rows keyed to the top-level question.
// Attributes are not supported per-subquestion.
func (q *Question) buildAttributes() *attributeSection {
	rows := make([]attributeRow, 0, len(q.Attributes))
	for _, attr := range q.Attributes {
		rows = append(rows, attributeRow{
			QID:       1,
			Attribute: attr.Name,
			Value:     attr.Value,
		})
	}
	return &attributeSection{Fields: attributeFields, Rows: rows}
}

// buildAnswers emits the answers section and its parallel localization
// section. Answer IDs count from 1 in slice order; localization rows carry a
// separate document-wide counter.
func (q *Question) buildAnswers() (*answersSection, *answerL10nSect) {
	answerRows := make([]answerRow, 0, len(q.AnswerOptions))
	var l10nRows []answerL10nRow
	l10nID := 1
	for i, option := range q.AnswerOptions {
		aid := i + 1
		answerRows = append(answerRows, answerRow{
			QID:             1,
			Code:            option.Code,
			SortOrder:       option.SortOrder,
			AssessmentValue: option.AssessmentValue,
			ScaleID:         option.ScaleID,
		})
		for _, text := range option.L10ns {
			l10nRows = append(l10nRows, answerL10nRow{
				ID:       l10nID,
				AID:      aid,
				Answer:   text.Text,
				Language: text.Language,
			})
			l10nID++
		}
	}
	return &answersSection{Fields: answerFields, Rows: answerRows},
		&answerL10nSect{Fields: answerL10nFields, Rows: l10nRows}
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
