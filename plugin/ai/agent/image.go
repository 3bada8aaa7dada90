package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/repgenie/repgenie/plugin/ai"
)

// ImageAgent analyzes physique and meal photos with the vision model.
type ImageAgent struct {
	provider ai.Provider
}

// NewImageAgent creates the image analysis agent.
func NewImageAgent(provider ai.Provider) *ImageAgent {
	return &ImageAgent{provider: provider}
}

// Analyze runs the vision completion and returns the reply along with a
// synthetic human message describing the upload. The synthetic message
// is what gets persisted so later text turns have usable context.
func (a *ImageAgent) Analyze(ctx context.Context, imageData []byte, mimeType string, history []Exchange) (reply, humanMessage string, err error) {
	var historyBlock string
	if transcript := renderHistory(history); transcript != "" {
		historyBlock = fmt.Sprintf("\nPrevious conversation context:\n%s\n", transcript)
	}
	prompt := fmt.Sprintf(imageAnalysisPrompt, historyBlock)

	reply, err = a.provider.ChatVision(ctx, prompt, imageData, mimeType)
	if err != nil {
		return "", "", err
	}
	return reply, describeImageUpload(reply), nil
}

// describeImageUpload derives a persisted human message from the reply
// so other agents can pick up what kind of image was shared.
func describeImageUpload(reply string) string {
	msg := "I shared an image for fitness analysis. "
	lower := strings.ToLower(reply)
	switch {
	case strings.Contains(lower, "physique") || strings.Contains(lower, "body") || strings.Contains(lower, "muscle"):
		msg += "It appears to be a physique/body composition photo. "
	case strings.Contains(lower, "food") || strings.Contains(lower, "meal") || strings.Contains(lower, "nutrition"):
		msg += "It appears to be a food/meal photo. "
	default:
		msg += "Please analyze this fitness-related image. "
	}
	msg += "Please consider this analysis in our future conversations about my fitness goals."
	return msg
}
