package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

func addCorpusSeeds(f *testing.F) {
	seeds := []string{
		"",
		"/// uselibrary readline\n",
		"/// usepackage sdl2\n",
		"/// switch OPENGL 1\n/// {OPENGL} uselibrary GL\n",
		"  /// switch AUDIO false\n",
		"//// banner comment ////\n",
		"/// frobnicate\n",
		"/// {BROKEN uselibrary x\n",
		"/// {A} {B} uselibrary x\n",
		"/// switch\n/// uselibrary\n",
		"int main() { /* /// uselibrary m */ return 0; }\n",
		"/// \xff\xfe uselibrary bin\n",
		"/// uselibrary été\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxFuzzInput {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxFuzzInput]...)
}
