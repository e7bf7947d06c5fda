package publish

import (
	"regexp"
	"testing"
)

var tokenShape = regexp.MustCompile(`^[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz]-[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz]$`)

func TestEncodeProquintKnownValues(t *testing.T) {
	cases := []struct {
		value uint32
		want  string
	}{
		{0x7f000001, "lusab-babad"},
		{0x00000000, "babab-babab"},
		{0xffffffff, "zuzuz-zuzuz"},
	}
	for _, tc := range cases {
		if got := EncodeProquint(tc.value); got != tc.want {
			t.Fatalf("EncodeProquint(%#x) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestProquintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0xdeadbeef, 0x7f000001, 0xffffffff}
	for _, v := range values {
		token := EncodeProquint(v)
		got, err := DecodeProquint(token)
		if err != nil {
			t.Fatalf("DecodeProquint(%q): %v", token, err)
		}
		if got != v {
			t.Fatalf("round trip %#x -> %q -> %#x", v, token, got)
		}
	}
}

func TestDecodeProquintRejectsMalformed(t *testing.T) {
	for _, token := range []string{"", "lusab", "lusab-babax", "eusab-babad", "lusab-babad-babad"} {
		if _, err := DecodeProquint(token); err == nil {
			t.Fatalf("DecodeProquint(%q) should fail", token)
		}
	}
}

func TestGenerateTokenShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if !tokenShape.MatchString(token) {
			t.Fatalf("token %q does not match quint-quint shape", token)
		}
	}
}
