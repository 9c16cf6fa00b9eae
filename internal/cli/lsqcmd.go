package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/edgarrmondragon/citric-sub000/pkg/lsq"
)

// questionSpecFile is the YAML shape accepted by the lsq command. It mirrors
// the lsq package types with lowercase keys.
type questionSpecFile struct {
	Title     string `yaml:"title"`
	Type      string `yaml:"type"`
	Mandatory bool   `yaml:"mandatory"`
	Other     bool   `yaml:"other"`
	Encrypted bool   `yaml:"encrypted"`
	Relevance string `yaml:"relevance"`
	Preg      string `yaml:"preg"`
	Texts     []struct {
		Language string `yaml:"language"`
		Question string `yaml:"question"`
		Help     string `yaml:"help"`
		Script   string `yaml:"script"`
	} `yaml:"texts"`
	Attributes map[string]string  `yaml:"attributes"`
	Questions  []questionSpecFile `yaml:"subquestions"`
	Answers    []struct {
		Code            string `yaml:"code"`
		SortOrder       int    `yaml:"sort_order"`
		AssessmentValue int    `yaml:"assessment_value"`
		Texts           []struct {
			Language string `yaml:"language"`
			Text     string `yaml:"text"`
		} `yaml:"texts"`
	} `yaml:"answers"`
}

// newLSQCmd creates and returns a new lsq command
func newLSQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsq <file>",
		Short: "Render a YAML question definition as an LSQ document",
		Long: `lsq converts a YAML question definition into the XML document the
LimeSurvey question import expects. The result goes to standard output or to
the file named by --output, and can be uploaded with the import_question
remote method.

Example:
  citric lsq question.yaml -o question.lsq`,
		Args: cobra.ExactArgs(1),
		RunE: runLSQ,
	}

	cmd.Flags().StringP("output", "o", "", "Output file; defaults to standard output")
	cmd.Flags().Int("db-version", 0, "Override the schema version written into the document")
	return cmd
}

// runLSQ handles the lsq command execution
func runLSQ(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading question definition: %w", err)
	}

	var spec questionSpecFile
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parsing question definition: %w", err)
	}

	question := spec.toQuestion()
	if question.Title == "" || question.Type == "" {
		return fmt.Errorf("question definition needs at least a title and a type")
	}
	if len(question.L10ns) == 0 {
		return fmt.Errorf("question definition needs at least one entry under texts")
	}

	var opts []lsq.Option
	if dbVersion, _ := cmd.Flags().GetInt("db-version"); dbVersion != 0 {
		opts = append(opts, lsq.WithDBVersion(dbVersion))
	}

	out := os.Stdout
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := question.WriteLSQ(out, opts...); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}

func (s questionSpecFile) toQuestion() lsq.Question {
	q := lsq.Question{
		Title:     s.Title,
		Type:      s.Type,
		Mandatory: s.Mandatory,
		Other:     s.Other,
		Encrypted: s.Encrypted,
		Relevance: s.Relevance,
		Preg:      s.Preg,
	}
	for _, t := range s.Texts {
		q.L10ns = append(q.L10ns, lsq.L10n{
			Language: t.Language,
			Question: t.Question,
			Help:     t.Help,
			Script:   t.Script,
		})
	}
	names := make([]string, 0, len(s.Attributes))
	for name := range s.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		q.Attributes = append(q.Attributes, lsq.Attribute{Name: name, Value: s.Attributes[name]})
	}
	for _, sq := range s.Questions {
		q.Subquestions = append(q.Subquestions, sq.toQuestion())
	}
	for _, a := range s.Answers {
		opt := lsq.AnswerOption{
			Code:            a.Code,
			SortOrder:       a.SortOrder,
			AssessmentValue: a.AssessmentValue,
		}
		for _, t := range a.Texts {
			opt.L10ns = append(opt.L10ns, lsq.AnswerText{Language: t.Language, Text: t.Text})
		}
		q.AnswerOptions = append(q.AnswerOptions, opt)
	}
	return q
}
