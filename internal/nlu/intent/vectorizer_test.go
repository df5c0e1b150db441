package intent

import (
	"math"
	"testing"
)

func TestAnalyze(t *testing.T) {
	got := analyze("Check MY balance!", 1, 3)
	want := []string{"check", "my", "balance", "check my", "my balance", "check my balance"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if terms := analyze("a b c", 1, 3); len(terms) != 0 {
		t.Errorf("single-character tokens must be dropped, got %v", terms)
	}
}

func TestFitVectorizer(t *testing.T) {
	docs := []string{"check balance", "check balance now", "block card"}
	v := fitVectorizer(docs, VectorizerOptions{}.withDefaults())

	idx, ok := v.Vocabulary["check"]
	if !ok {
		t.Fatal("expected 'check' in vocabulary")
	}
	wantIDF := math.Log(4.0/3.0) + 1
	if math.Abs(v.IDF[idx]-wantIDF) > 1e-12 {
		t.Errorf("idf(check): got %v, want %v", v.IDF[idx], wantIDF)
	}

	vec := v.transform("Check balance balance")
	var norm float64
	for _, x := range vec.values {
		norm += x * x
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("expected unit norm, got %v", norm)
	}
	for i := 1; i < len(vec.indices); i++ {
		if vec.indices[i] <= vec.indices[i-1] {
			t.Fatalf("indices not ascending: %v", vec.indices)
		}
	}

	if empty := v.transform("zzz qqq"); len(empty.indices) != 0 {
		t.Errorf("unknown terms must be dropped, got %v", empty.indices)
	}
}

func TestFitVectorizer_MaxFeatures(t *testing.T) {
	docs := []string{"alpha alpha alpha beta", "alpha gamma"}
	opts := VectorizerOptions{NgramMin: 1, NgramMax: 1, MaxFeatures: 1}.withDefaults()
	v := fitVectorizer(docs, opts)

	if v.Features() != 1 {
		t.Fatalf("expected 1 feature, got %d", v.Features())
	}
	if _, ok := v.Vocabulary["alpha"]; !ok {
		t.Errorf("expected most frequent term to survive, got %v", v.Vocabulary)
	}
}

func TestLabelEncoder(t *testing.T) {
	enc := fitLabelEncoder([]string{"transfer_money", "check_balance", "transfer_money", "greetings"})
	want := []string{"check_balance", "greetings", "transfer_money"}
	for i, c := range want {
		if enc.Classes[i] != c {
			t.Fatalf("classes: got %v, want %v", enc.Classes, want)
		}
	}
	if i, err := enc.encode("greetings"); err != nil || i != 1 {
		t.Errorf("encode: got %d %v", i, err)
	}
	if _, err := enc.encode("card_block"); err == nil {
		t.Error("expected error for unseen label")
	}
	if enc.decode(2) != "transfer_money" {
		t.Errorf("decode: got %s", enc.decode(2))
	}
}
