package sentir

import "github.com/crimson-sun/sentir/internal/service"

// Emotion is one scored emotion: localized name, canonical GoEmotions id,
// probability rounded to a 0–100 percentage, the "NN.NN%" display string,
// and the unrounded fraction.
type Emotion struct {
	Emocao         string  `json:"emocao"`
	EmocaoOriginal string  `json:"emocao_original"`
	Probabilidade  float64 `json:"probabilidade"`
	Porcentagem    string  `json:"porcentagem"`
	Score          float64 `json:"score"`
}

// DetailedEmotion extends Emotion with its confidence-band name:
// "alta", "média" or "baixa".
type DetailedEmotion struct {
	Emotion
	Nivel string `json:"nivel"`
}

// CompactEmotion is the abbreviated shape used in comparison entries.
type CompactEmotion struct {
	Emocao         string `json:"emocao"`
	EmocaoOriginal string `json:"emocao_original"`
	Probabilidade  string `json:"probabilidade"`
}

// Analysis is the result of Analyze.
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

// BandedEmotions lists the emotions of each confidence band.
type BandedEmotions struct {
	Alta  []Emotion `json:"alta"`
	Media []Emotion `json:"media"`
	Baixa []Emotion `json:"baixa"`
}

// DetailedAnalysis is the result of AnalyzeDetailed.
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

// ComparedText is one entry of a Comparison, numbered from 1 in input order.
type ComparedText struct {
	TextoNumero             int              `json:"texto_numero"`
	Texto                   string           `json:"texto"`
	EmocaoDominante         string           `json:"emocao_dominante"`
	EmocaoDominanteOriginal string           `json:"emocao_dominante_original"`
	Confianca               string           `json:"confianca"`
	Top3Emocoes             []CompactEmotion `json:"top_3_emocoes"`
}

// Comparison is the result of Compare.
type Comparison struct {
	TotalTextosAnalisados int            `json:"total_textos_analisados"`
	Analises              []ComparedText `json:"analises"`
}

func fromEmotion(e service.Emotion) Emotion {
	return Emotion{
		Emocao:         e.Emocao,
		EmocaoOriginal: e.EmocaoOriginal,
		Probabilidade:  e.Probabilidade,
		Porcentagem:    e.Porcentagem,
		Score:          e.Score,
	}
}

func fromEmotions(in []service.Emotion) []Emotion {
	out := make([]Emotion, len(in))
	for i, e := range in {
		out[i] = fromEmotion(e)
	}
	return out
}

func fromAnalysis(a service.Analysis) Analysis {
	return Analysis{
		TextoAnalisado:          a.TextoAnalisado,
		TotalEmocoesDetectadas:  a.TotalEmocoesDetectadas,
		EmocaoDominante:         a.EmocaoDominante,
		EmocaoDominanteOriginal: a.EmocaoDominanteOriginal,
		ConfiancaDominante:      a.ConfiancaDominante,
		TopEmocoes:              fromEmotions(a.TopEmocoes),
	}
}

func fromDetailedAnalysis(a service.DetailedAnalysis) DetailedAnalysis {
	todas := make([]DetailedEmotion, len(a.TodasEmocoes))
	for i, e := range a.TodasEmocoes {
		todas[i] = DetailedEmotion{Emotion: fromEmotion(e.Emotion), Nivel: e.Nivel}
	}
	return DetailedAnalysis{
		TextoAnalisado:          a.TextoAnalisado,
		TotalEmocoesDetectadas:  a.TotalEmocoesDetectadas,
		EmocaoDominante:         a.EmocaoDominante,
		EmocaoDominanteOriginal: a.EmocaoDominanteOriginal,
		ConfiancaDominante:      a.ConfiancaDominante,
		Resumo: Summary{
			AltaConfianca:  a.Resumo.AltaConfianca,
			MediaConfianca: a.Resumo.MediaConfianca,
			BaixaConfianca: a.Resumo.BaixaConfianca,
		},
		EmocoesPorNivel: BandedEmotions{
			Alta:  fromEmotions(a.EmocoesPorNivel.Alta),
			Media: fromEmotions(a.EmocoesPorNivel.Media),
			Baixa: fromEmotions(a.EmocoesPorNivel.Baixa),
		},
		TodasEmocoes: todas,
	}
}

func fromComparison(c service.Comparison) Comparison {
	analises := make([]ComparedText, len(c.Analises))
	for i, a := range c.Analises {
		top := make([]CompactEmotion, len(a.Top3Emocoes))
		for j, e := range a.Top3Emocoes {
			top[j] = CompactEmotion{
				Emocao:         e.Emocao,
				EmocaoOriginal: e.EmocaoOriginal,
				Probabilidade:  e.Probabilidade,
			}
		}
		analises[i] = ComparedText{
			TextoNumero:             a.TextoNumero,
			Texto:                   a.Texto,
			EmocaoDominante:         a.EmocaoDominante,
			EmocaoDominanteOriginal: a.EmocaoDominanteOriginal,
			Confianca:               a.Confianca,
			Top3Emocoes:             top,
		}
	}
	return Comparison{
		TotalTextosAnalisados: c.TotalTextosAnalisados,
		Analises:              analises,
	}
}
