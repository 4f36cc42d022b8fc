// Package service exposes the three sentiment-analysis operations with
// their stable external field contract, plus the tool table a transport
// host registers them through.
package service

import (
	"context"

	"github.com/crimson-sun/sentir/internal/engine"
	"github.com/crimson-sun/sentir/internal/engine/bucket"
	"github.com/crimson-sun/sentir/internal/engine/labels"
	"github.com/crimson-sun/sentir/internal/engine/rank"
)

// DefaultTopK is the top_k applied when a caller omits it.
const DefaultTopK = 5

// Service implements the callable operations over the classification
// engine.
type Service struct {
	engine *engine.Engine
}

// New creates a Service.
func New(eng *engine.Engine) *Service {
	return &Service{engine: eng}
}

// Analyze implements analisar_sentimento: the top_k highest-probability
// emotions for one text. top_k must be in [1, 28].
func (s *Service) Analyze(ctx context.Context, texto string, topK int) (Analysis, error) {
	result, err := s.engine.Analyze(ctx, texto)
	if err != nil {
		return Analysis{}, err
	}
	top, err := rank.Top(result.Scores, topK)
	if err != nil {
		return Analysis{}, err
	}

	dominant := result.Dominant()
	return Analysis{
		TextoAnalisado:          texto,
		TotalEmocoesDetectadas:  labels.Count(),
		EmocaoDominante:         labels.Display(dominant.Label),
		EmocaoDominanteOriginal: dominant.Label,
		ConfiancaDominante:      percentString(dominant.Probability),
		TopEmocoes:              toEmotions(top),
	}, nil
}

// AnalyzeDetailed implements analisar_sentimento_detalhado: all 28 emotions
// with confidence-band counts and banded lists.
func (s *Service) AnalyzeDetailed(ctx context.Context, texto string) (DetailedAnalysis, error) {
	result, bands, err := s.engine.AnalyzeDetailed(ctx, texto)
	if err != nil {
		return DetailedAnalysis{}, err
	}

	dominant := result.Dominant()
	return DetailedAnalysis{
		TextoAnalisado:          texto,
		TotalEmocoesDetectadas:  labels.Count(),
		EmocaoDominante:         labels.Display(dominant.Label),
		EmocaoDominanteOriginal: dominant.Label,
		ConfiancaDominante:      percentString(dominant.Probability),
		Resumo: Summary{
			AltaConfianca:  len(bands.High),
			MediaConfianca: len(bands.Medium),
			BaixaConfianca: len(bands.Low),
		},
		EmocoesPorNivel: BandedEmotions{
			Alta:  toEmotions(bands.High),
			Media: toEmotions(bands.Medium),
			Baixa: toEmotions(bands.Low),
		},
		TodasEmocoes: toDetailedEmotions(result.Scores),
	}, nil
}

// Compare implements comparar_sentimentos: side-by-side top-3 summaries for
// an ordered batch of texts, all-or-nothing.
func (s *Service) Compare(ctx context.Context, textos []string) (Comparison, error) {
	result, err := s.engine.Compare(ctx, textos)
	if err != nil {
		return Comparison{}, err
	}

	analises := make([]ComparedText, len(result.Entries))
	for i, entry := range result.Entries {
		dominant := entry.Top[0]
		analises[i] = ComparedText{
			TextoNumero:             entry.Index,
			Texto:                   entry.Text,
			EmocaoDominante:         labels.Display(dominant.Label),
			EmocaoDominanteOriginal: dominant.Label,
			Confianca:               percentString(dominant.Probability),
			Top3Emocoes:             toCompactEmotions(entry.Top),
		}
	}
	return Comparison{
		TotalTextosAnalisados: len(result.Entries),
		Analises:              analises,
	}, nil
}

// nivel names the confidence band of a probability for display.
func nivel(p float64) string {
	return bucket.Level(p)
}
