package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/sentir/internal/model"
)

// Tool describes one callable operation for the transport host: a stable
// name, a caller-facing description, and a handler that decodes its own
// JSON argument object. Registration is an explicit table, not runtime
// introspection.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Handler func(ctx context.Context, args json.RawMessage) (any, error) `json:"-"`
}

// Tools returns the registration table for the three operations.
func (s *Service) Tools() []Tool {
	return []Tool{
		{
			Name: "analisar_sentimento",
			Description: "Analisa o sentimento de um texto e retorna as top_k emoções " +
				"detectadas (padrão 5, máximo 28) entre as 28 emoções GoEmotions, em português.",
			Handler: s.handleAnalyze,
		},
		{
			Name: "analisar_sentimento_detalhado",
			Description: "Analisa o sentimento de um texto retornando todas as 28 emoções " +
				"com probabilidades, agrupadas por nível de confiança (alta, média, baixa).",
			Handler: s.handleAnalyzeDetailed,
		},
		{
			Name: "comparar_sentimentos",
			Description: "Compara os sentimentos de múltiplos textos lado a lado, com a " +
				"emoção dominante e as top 3 emoções de cada texto, na ordem enviada.",
			Handler: s.handleCompare,
		},
	}
}

func (s *Service) handleAnalyze(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Texto string `json:"texto"`
		TopK  *int   `json:"top_k"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	topK := DefaultTopK
	if in.TopK != nil {
		topK = *in.TopK
	}
	return s.Analyze(ctx, in.Texto, topK)
}

func (s *Service) handleAnalyzeDetailed(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Texto string `json:"texto"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return s.AnalyzeDetailed(ctx, in.Texto)
}

func (s *Service) handleCompare(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Textos []string `json:"textos"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	return s.Compare(ctx, in.Textos)
}

func decodeArgs(args json.RawMessage, dest any) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing argument object", model.ErrInvalidArgument)
	}
	if err := json.Unmarshal(args, dest); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	return nil
}
