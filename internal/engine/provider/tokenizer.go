package provider

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSeqLen = 128

// wordpieceVocab maps WordPiece tokens to ids. Token ids are line numbers
// (0-indexed) in vocab.txt, matching the Hugging Face export format.
type wordpieceVocab struct {
	ids map[string]int64

	padID int64
	unkID int64
	clsID int64
	sepID int64
}

func loadVocab(path string) (*wordpieceVocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()

	v := &wordpieceVocab{ids: make(map[string]int64, 32000)}
	scanner := bufio.NewScanner(f)
	var n int64
	for scanner.Scan() {
		v.ids[scanner.Text()] = n
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read error: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("vocab: file is empty: %s", path)
	}

	for _, s := range []struct {
		tok  string
		dest *int64
	}{
		{"[PAD]", &v.padID},
		{"[UNK]", &v.unkID},
		{"[CLS]", &v.clsID},
		{"[SEP]", &v.sepID},
	} {
		id, ok := v.ids[s.tok]
		if !ok {
			return nil, fmt.Errorf("vocab: missing special token %s", s.tok)
		}
		*s.dest = id
	}
	return v, nil
}

// id returns the token id, falling back to [UNK] for out-of-vocabulary
// tokens.
func (v *wordpieceVocab) id(tok string) int64 {
	if id, ok := v.ids[tok]; ok {
		return id
	}
	return v.unkID
}

// tokenizer performs BERT-style WordPiece tokenization for the GoEmotions
// classification model: lowercase, accent stripping, punctuation splitting,
// then longest-match subword decomposition.
type tokenizer struct {
	vocab *wordpieceVocab
}

func newTokenizer(vocabPath string) (*tokenizer, error) {
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v}, nil
}

// encoded holds flat [batchSize * seqLen] tensors ready for inference.
type encoded struct {
	inputIDs      []int64
	attentionMask []int64
	tokenTypeIDs  []int64
	batchSize     int64
	seqLen        int64
}

// encode converts one text into unpadded token ids wrapped in [CLS]/[SEP],
// truncated so the full sequence fits maxSeqLen.
func (t *tokenizer) encode(text string) []int64 {
	var pieces []string
	for _, word := range splitWords(text) {
		pieces = append(pieces, t.subwords(word)...)
	}
	if len(pieces) > maxSeqLen-2 {
		pieces = pieces[:maxSeqLen-2]
	}

	ids := make([]int64, 0, len(pieces)+2)
	ids = append(ids, t.vocab.clsID)
	for _, p := range pieces {
		ids = append(ids, t.vocab.id(p))
	}
	return append(ids, t.vocab.sepID)
}

// encodeBatch encodes multiple texts and packs them into flat slices padded
// to the longest sequence in the batch.
func (t *tokenizer) encodeBatch(texts []string) encoded {
	n := len(texts)
	if n == 0 {
		return encoded{}
	}

	seqs := make([][]int64, n)
	seqLen := int64(0)
	for i, text := range texts {
		seqs[i] = t.encode(text)
		if l := int64(len(seqs[i])); l > seqLen {
			seqLen = l
		}
	}

	total := int64(n) * seqLen
	enc := encoded{
		inputIDs:      make([]int64, total),
		attentionMask: make([]int64, total),
		tokenTypeIDs:  make([]int64, total),
		batchSize:     int64(n),
		seqLen:        seqLen,
	}
	for i, seq := range seqs {
		off := int64(i) * seqLen
		for j, id := range seq {
			enc.inputIDs[off+int64(j)] = id
			enc.attentionMask[off+int64(j)] = 1
		}
		// Remaining positions stay 0 ([PAD], mask 0).
	}
	return enc
}

// subwords decomposes one word into WordPiece subwords via greedy
// longest-match. Words that cannot be decomposed become [UNK].
func (t *tokenizer) subwords(word string) []string {
	runes := []rune(word)
	if len(runes) > 200 {
		return []string{"[UNK]"}
	}

	var out []string
	start := 0
	for start < len(runes) {
		end := len(runes)
		var match string
		for end > start {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if _, ok := t.vocab.ids[sub]; ok {
				match = sub
				break
			}
			end--
		}
		if match == "" {
			return []string{"[UNK]"}
		}
		out = append(out, match)
		start = end
	}
	return out
}

// splitWords normalizes text (lowercase, control chars removed, accents
// stripped) and splits it on whitespace and punctuation, keeping punctuation
// as separate tokens. Matches the uncased BERT BasicTokenizer for the
// Portuguese and English text this service targets.
func splitWords(text string) []string {
	var words []string
	for _, field := range strings.Fields(normalize(text)) {
		var cur strings.Builder
		for _, r := range field {
			if isPunct(r) {
				if cur.Len() > 0 {
					words = append(words, cur.String())
					cur.Reset()
				}
				words = append(words, string(r))
				continue
			}
			cur.WriteRune(r)
		}
		if cur.Len() > 0 {
			words = append(words, cur.String())
		}
	}
	return words
}

// normalize lowercases, drops control characters, and strips combining
// diacritical marks after NFD decomposition.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range norm.NFD.String(strings.ToLower(text)) {
		switch {
		case r == 0 || r == 0xFFFD:
		case unicode.In(r, unicode.Mn):
		case unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r':
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isPunct mirrors BERT's punctuation classes: the ASCII symbol ranges plus
// Unicode punctuation categories.
func isPunct(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) ||
		(r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}
