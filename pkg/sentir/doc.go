// Package sentir provides multi-label emotion analysis for text, scoring
// all 28 GoEmotions categories and presenting results in Portuguese.
//
// Quick start:
//
//	a, err := sentir.New(sentir.WithONNX("models/model.onnx", "models/vocab.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	result, _ := a.Analyze(ctx, "que dia maravilhoso!", 5)
//	fmt.Println(result.EmocaoDominante) // alegria
//
// The model is loaded lazily on the first call and reused afterwards. The
// Analyzer is safe for concurrent use. Create once, reuse across requests.
package sentir
