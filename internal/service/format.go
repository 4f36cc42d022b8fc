package service

import (
	"fmt"
	"math"

	"github.com/crimson-sun/sentir/internal/engine/labels"
	"github.com/crimson-sun/sentir/internal/model"
)

// Emotion is one scored label as presented to callers: localized name,
// canonical id, probability rounded to a 2-decimal percentage for display,
// and the unrounded fraction for programmatic consumers.
type Emotion struct {
	Emocao         string  `json:"emocao"`
	EmocaoOriginal string  `json:"emocao_original"`
	Probabilidade  float64 `json:"probabilidade"` // 0–100, 2 decimals
	Porcentagem    string  `json:"porcentagem"`   // "NN.NN%"
	Score          float64 `json:"score"`         // raw fraction in [0,1]
}

// DetailedEmotion extends Emotion with its confidence-band name.
type DetailedEmotion struct {
	Emotion
	Nivel string `json:"nivel"` // "alta", "média" or "baixa"
}

// CompactEmotion is the abbreviated shape used in comparison entries.
type CompactEmotion struct {
	Emocao         string `json:"emocao"`
	EmocaoOriginal string `json:"emocao_original"`
	Probabilidade  string `json:"probabilidade"` // "NN.NN%"
}

// Analysis is the analisar_sentimento response shape. Field names are the
// stable external contract.
type Analysis struct {
	TextoAnalisado          string    `json:"texto_analisado"`
	TotalEmocoesDetectadas  int       `json:"total_emocoes_detectadas"`
	EmocaoDominante         string    `json:"emocao_dominante"`
	EmocaoDominanteOriginal string    `json:"emocao_dominante_original"`
	ConfiancaDominante      string    `json:"confianca_dominante"`
	TopEmocoes              []Emotion `json:"top_emocoes"`
}

// Summary holds the per-band emotion counts.
type Summary struct {
	AltaConfianca  int `json:"emocoes_alta_confianca"`
	MediaConfianca int `json:"emocoes_media_confianca"`
	BaixaConfianca int `json:"emocoes_baixa_confianca"`
}

// BandedEmotions lists the emotions of each confidence band, descending by
// probability within each band.
type BandedEmotions struct {
	Alta  []Emotion `json:"alta"`
	Media []Emotion `json:"media"`
	Baixa []Emotion `json:"baixa"`
}

// DetailedAnalysis is the analisar_sentimento_detalhado response shape.
type DetailedAnalysis struct {
	TextoAnalisado          string            `json:"texto_analisado"`
	TotalEmocoesDetectadas  int               `json:"total_emocoes_detectadas"`
	EmocaoDominante         string            `json:"emocao_dominante"`
	EmocaoDominanteOriginal string            `json:"emocao_dominante_original"`
	ConfiancaDominante      string            `json:"confianca_dominante"`
	Resumo                  Summary           `json:"resumo"`
	EmocoesPorNivel         BandedEmotions    `json:"emocoes_por_nivel"`
	TodasEmocoes            []DetailedEmotion `json:"todas_emocoes"`
}

// ComparedText is one entry of the comparar_sentimentos response.
type ComparedText struct {
	TextoNumero             int              `json:"texto_numero"`
	Texto                   string           `json:"texto"`
	EmocaoDominante         string           `json:"emocao_dominante"`
	EmocaoDominanteOriginal string           `json:"emocao_dominante_original"`
	Confianca               string           `json:"confianca"`
	Top3Emocoes             []CompactEmotion `json:"top_3_emocoes"`
}

// Comparison is the comparar_sentimentos response shape.
type Comparison struct {
	TotalTextosAnalisados int            `json:"total_textos_analisados"`
	Analises              []ComparedText `json:"analises"`
}

// percent converts a [0,1] probability to a 0–100 value rounded to two
// decimals.
func percent(p float64) float64 {
	return math.Round(p*10000) / 100
}

// percentString renders a probability as "NN.NN%".
func percentString(p float64) string {
	return fmt.Sprintf("%.2f%%", percent(p))
}

func toEmotion(s model.Score) Emotion {
	return Emotion{
		Emocao:         labels.Display(s.Label),
		EmocaoOriginal: s.Label,
		Probabilidade:  percent(s.Probability),
		Porcentagem:    percentString(s.Probability),
		Score:          s.Probability,
	}
}

func toEmotions(scores []model.Score) []Emotion {
	out := make([]Emotion, len(scores))
	for i, s := range scores {
		out[i] = toEmotion(s)
	}
	return out
}

func toDetailedEmotions(scores []model.Score) []DetailedEmotion {
	out := make([]DetailedEmotion, len(scores))
	for i, s := range scores {
		out[i] = DetailedEmotion{
			Emotion: toEmotion(s),
			Nivel:   nivel(s.Probability),
		}
	}
	return out
}

func toCompactEmotions(scores []model.Score) []CompactEmotion {
	out := make([]CompactEmotion, len(scores))
	for i, s := range scores {
		out[i] = CompactEmotion{
			Emocao:         labels.Display(s.Label),
			EmocaoOriginal: s.Label,
			Probabilidade:  percentString(s.Probability),
		}
	}
	return out
}
