package wire

import "testing"

func TestUTF16RoundTrip(t *testing.T) {
	cases := []string{"", "Hi", "hello, world", "café", "\U0001F600"}
	for _, s := range cases {
		enc, err := UTF8ToUTF16LE(s)
		if err != nil {
			t.Fatalf("UTF8ToUTF16LE(%q): %v", s, err)
		}
		if len(enc)%2 != 0 {
			t.Fatalf("UTF-16LE byte length %d not even", len(enc))
		}
		dec, err := UTF16LEToUTF8(enc)
		if err != nil {
			t.Fatalf("UTF16LEToUTF8: %v", err)
		}
		if dec != s {
			t.Fatalf("round trip: got %q, want %q", dec, s)
		}
	}
}

func TestUTF16LEToUTF8IncompleteLength(t *testing.T) {
	_, err := UTF16LEToUTF8([]byte{0x48})
	if err != IncompleteUtf16 {
		t.Fatalf("expected IncompleteUtf16, got %v", err)
	}
}

func TestUTF16LEToUTF8UnpairedSurrogate(t *testing.T) {
	// 0xD800 is a lone high surrogate with no following low surrogate.
	_, err := UTF16LEToUTF8([]byte{0x00, 0xD8})
	if err != InvalidUtf16 {
		t.Fatalf("expected InvalidUtf16, got %v", err)
	}
}

func TestS4ReadStringBytes(t *testing.T) {
	enc, err := UTF8ToUTF16LE("Hi")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x48, 0x00, 0x69, 0x00}
	if string(enc) != string(want) {
		t.Fatalf("got % x, want % x", enc, want)
	}
}
