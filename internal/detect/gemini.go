package detect

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiPrompt = `Read every book spine in this photo. ` +
	`Return one line of plain text per spine, exactly as printed, ` +
	`top shelf first. No commentary, no numbering, no markdown.`

// GeminiDetector sends the photo to the Gemini vision API and lets the
// model do both recognition and line segmentation. Requires the
// GEMINI_API_KEY environment variable.
type GeminiDetector struct {
	// Model is a Gemini model name such as "gemini-2.0-flash".
	Model string
}

func NewGeminiDetector(model string) *GeminiDetector {
	return &GeminiDetector{Model: model}
}

func (d *GeminiDetector) Name() string {
	return "gemini"
}

func (d *GeminiDetector) DetectLines(ctx context.Context, image []byte) ([]string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	prepared, _, err := Preprocess(image)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(d.Model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("png", prepared),
		genai.Text(geminiPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	var lines []string
	for _, line := range strings.Split(string(txt), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
