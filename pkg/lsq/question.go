// Package lsq generates LSQ question-definition files: the tabular XML
// interchange format consumed by the LimeSurvey question import feature. A
// document holds exactly one top-level question plus its subquestions, answer
// options, attributes and localizations.
package lsq

// DefaultDBVersion is the schema version written into generated documents.
const DefaultDBVersion = 641

// L10n is the localization of a question in one language. The language order
// across a Question's L10ns slice determines both the declared language list
// and the emission order of localization rows.
type L10n struct {
	Language string
	Question string
	Help     string
	Script   string
}

// AnswerText is the text of one answer option in one language.
type AnswerText struct {
	Language string
	Text     string
}

// AnswerOption is a single answer of a list or dropdown question. Answer IDs
// are assigned sequentially from 1 in slice order at serialization time.
type AnswerOption struct {
	Code            string
	L10ns           []AnswerText
	SortOrder       int
	AssessmentValue int
	ScaleID         int
}

// Attribute is one free-form question attribute. Attributes apply to the
// top-level question only.
type Attribute struct {
	Name  string
	Value string
}

// Question is a question definition that can serialize itself as an LSQ
// document. The type code and flags follow the platform's questions table; a
// zero Relevance serializes as the always-true expression "1".
type Question struct {
	Title         string
	Type          string
	L10ns         []L10n
	Mandatory     bool
	Other         bool
	Encrypted     bool
	Relevance     string
	ScaleID       int
	Preg          string
	Attributes    []Attribute
	Subquestions  []Question
	AnswerOptions []AnswerOption
}
