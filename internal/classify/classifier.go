package classify

import "github.com/deferredreward/translation-note-writer-sub001/internal/model"

// Resolution is a row claimed by a deterministic rule, with the evidence
// that resolved it.
type Resolution struct {
	Row     model.Row
	Rule    string
	Matches []string // Matched article files (translate-unknown only)
}

// Result is the stable two-way partition of an input batch. Every input
// row appears in exactly one side, in its original relative order.
type Result struct {
	Programmatic []Resolution
	NeedsAI      []model.Row
}

// Classifier applies an ordered rule list to each row.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a classifier with the standard rule order:
// translate-unknown, then see-how, then the implicit AI fallback.
func NewClassifier() *Classifier {
	return &Classifier{
		rules: []Rule{
			TranslateUnknownRule{},
			SeeHowRule{},
		},
	}
}

// NewClassifierWithRules builds a classifier with a custom rule order.
func NewClassifierWithRules(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify partitions rows. It performs no I/O and mutates neither the
// rows nor the context: the result is a pure function of its inputs.
func (c *Classifier) Classify(rows []model.Row, ctx *Context) Result {
	result := Result{}

	for _, row := range rows {
		claimed := false
		for _, rule := range c.rules {
			outcome := rule.Apply(row, ctx)
			if outcome.Claimed {
				result.Programmatic = append(result.Programmatic, Resolution{
					Row:     row,
					Rule:    rule.Name(),
					Matches: outcome.Matches,
				})
				claimed = true
				break
			}
		}
		if !claimed {
			result.NeedsAI = append(result.NeedsAI, row)
		}
	}

	return result
}
