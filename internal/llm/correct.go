package llm

import (
	"context"
	"fmt"
)

// correctionSystemPrompt instructs the model to repair OCR noise without
// changing the shape of the data.
const correctionSystemPrompt = "You are a helpful assistant that fixes errors in OCR outputs and provides correct data in the same JSON format."

// CorrectPage asks the completion service to clean up one page's raw OCR
// text. Each page is an independent call with no shared context.
func CorrectPage(ctx context.Context, completer Completer, raw string) (string, error) {
	messages := []Message{
		SystemMessage(correctionSystemPrompt),
		UserMessage(fmt.Sprintf("Fix the errors and get correct data in same JSON format:\n%s", raw)),
	}
	return completer.Complete(ctx, messages)
}
