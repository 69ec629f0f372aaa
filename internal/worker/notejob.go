package worker

import (
	"context"

	"github.com/deferredreward/translation-note-writer-sub001/internal/llm"
	"github.com/deferredreward/translation-note-writer-sub001/internal/model"
	"github.com/deferredreward/translation-note-writer-sub001/internal/note"
)

// NoteJob generates an AI note suggestion for one needs-AI row.
type NoteJob struct {
	Seq      int // Position in the input batch, for order restoration
	Row      model.Row
	Verses   map[string]string
	Provider llm.Provider
}

// NoteResult is the outcome of one NoteJob.
type NoteResult struct {
	Seq   int
	Row   model.Row
	Note  string // Final formatted note, empty on error
	Model string
	Err   error
}

// GetError returns the error from the note result.
func (r *NoteResult) GetError() error {
	return r.Err
}

// Execute runs the note generation and final formatting for the row.
func (j *NoteJob) Execute(ctx context.Context) Result {
	noteType := note.TypeOf(j.Row)

	resp, err := j.Provider.GenerateNote(ctx, llm.NoteRequest{
		Row:      j.Row,
		NoteType: noteType,
		Verses:   j.Verses,
	})
	if err != nil {
		return &NoteResult{Seq: j.Seq, Row: j.Row, Err: err}
	}

	cleaned := note.CleanAIOutput(resp.Text)
	return &NoteResult{
		Seq:   j.Seq,
		Row:   j.Row,
		Note:  note.FormatFinal(j.Row, cleaned, noteType),
		Model: resp.Model,
	}
}
