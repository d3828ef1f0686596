package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// callTimeout bounds every single generation call.
const callTimeout = 60 * time.Second

// Client wraps the Gemini API for summaries and highlight selection.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize asks the model for a Lithuanian editorial synopsis of one
// article. The caller is responsible for bounding the text size.
func (c *Client) Summarize(ctx context.Context, title, text string) (string, error) {
	prompt := strings.TrimSpace(fmt.Sprintf(`Tu esi profesionalus naujienų redaktorius Lietuvoje.

Užduotis: pateik šio straipsnio santrauką lietuvių kalba.

Reikalavimai:
- Rašyk tik lietuviškai.
- 3–5 punktai.
- 1 sakinys: "Kodėl tai svarbu Lietuvai?"
- Jokio clickbait.
- Jei trūksta faktų: "Neaišku iš straipsnio."

Pavadinimas: %s

Straipsnio tekstas:
%s`, title, text))

	return c.Generate(ctx, prompt)
}

// Generate runs one raw prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
