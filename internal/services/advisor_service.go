package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"gearrent/internal/domain"
	"gearrent/internal/log"
)

const (
	advisorOfflineText = "Maaf, sistem AI sedang offline. Silakan pilih alat secara manual atau hubungi admin."
	advisorFailedText  = "Maaf, saya sedang kesulitan berpikir. Mari kita lihat katalog manual saja ya!"
	advisorNoAdvice    = "Saya tidak dapat memberikan saran spesifik saat ini."
)

type Advice struct {
	Text           string   `json:"text"`
	RecommendedIDs []string `json:"recommendedIds"`
}

// Advisor recommends gear for a free-text trip description. It never
// fails; problems degrade to a canned reply.
type Advisor interface {
	Recommend(ctx context.Context, query string, products []domain.Product) Advice
}

// OfflineAdvisor is used when no model credentials are configured.
type OfflineAdvisor struct{}

func (OfflineAdvisor) Recommend(context.Context, string, []domain.Product) Advice {
	return Advice{Text: advisorOfflineText, RecommendedIDs: []string{}}
}

type OpenAIAdvisor struct {
	client *openai.Client
	model  string
}

// NewAdvisor returns an OpenAI-backed advisor, or OfflineAdvisor when
// apiKey is empty.
func NewAdvisor(baseURL, apiKey, model string) Advisor {
	if apiKey == "" {
		log.Info(nil, "advisor.disabled", map[string]any{"reason": "no api key"})
		return OfflineAdvisor{}
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	c := openai.NewClient(opts...)
	return &OpenAIAdvisor{client: &c, model: model}
}

const advisorSystemPrompt = `Anda adalah 'Mamas Guide', asisten ahli outdoor dari rental 'Mamas Outdoor' di Purwokerto.
Target audiens adalah mahasiswa yang ingin mendaki gunung (seperti Gn. Slamet, Prau, Sindoro, Sumbing) atau camping ceria.

Tugas Anda:
1. Berikan saran ramah dan singkat dalam Bahasa Indonesia yang santai tapi sopan.
2. Rekomendasikan alat dari daftar inventaris yang tersedia berdasarkan kebutuhan user.
3. Jika user bertanya tentang gunung di sekitar Purwokerto, berikan tips singkat.

Inventaris Mamas Outdoor:
%s

Jawab hanya dengan JSON: {"advice": "...", "recommendedProductIds": ["id1", "id2"]}`

type advisorReply struct {
	Advice                string   `json:"advice"`
	RecommendedProductIDs []string `json:"recommendedProductIds"`
}

func (a *OpenAIAdvisor) Recommend(ctx context.Context, query string, products []domain.Product) Advice {
	var inv strings.Builder
	known := make(map[string]bool, len(products))
	for _, p := range products {
		known[p.ID] = true
		fmt.Fprintf(&inv, "- %s (ID: %s, Kategori: %s)\n", p.Name, p.ID, p.Category)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf(advisorSystemPrompt, inv.String())),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(query),
					},
				},
			},
		},
		MaxTokens:   openai.Int(800),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		log.Error(nil, "advisor.request", err, nil)
		return Advice{Text: advisorFailedText, RecommendedIDs: []string{}}
	}
	if len(resp.Choices) == 0 {
		return Advice{Text: advisorNoAdvice, RecommendedIDs: []string{}}
	}
	return parseAdvice(resp.Choices[0].Message.Content, known)
}

// parseAdvice decodes the model reply, tolerating a fenced code block, and
// drops ids that are not in the catalog.
func parseAdvice(content string, known map[string]bool) Advice {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var r advisorReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &r); err != nil {
		log.Warn(nil, "advisor.reply.decode", err, nil)
		return Advice{Text: advisorFailedText, RecommendedIDs: []string{}}
	}
	out := Advice{Text: r.Advice, RecommendedIDs: []string{}}
	if out.Text == "" {
		out.Text = advisorNoAdvice
	}
	for _, id := range r.RecommendedProductIDs {
		if known[id] {
			out.RecommendedIDs = append(out.RecommendedIDs, id)
		}
	}
	return out
}
