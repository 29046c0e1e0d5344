package services

import "encoding/base64"

// A one-second silent MP3 clip. Real text-to-speech is out of scope; every
// narration segment gets this clip so the student player stays functional.
const placeholderClipB64 = "SUQzBAAAAAAAI1RTU0UAAAAPAAADTGF2ZjU2LjExLjEwMAAAAAAAAAAAAAAA//tQxAADB" +
	"AAAAAABP/7UMQAAEwAAAAAAAE8AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA" +
	"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

var placeholderClip []byte

func init() {
	clip, err := base64.StdEncoding.DecodeString(placeholderClipB64)
	if err != nil {
		panic("placeholder clip is not valid base64: " + err.Error())
	}
	placeholderClip = clip
}

// SynthesizeSegmentAudio returns the audio bytes for one narration segment.
// Placeholder implementation: the fixed silent clip, regardless of text.
func SynthesizeSegmentAudio(segmentText string) []byte {
	out := make([]byte, len(placeholderClip))
	copy(out, placeholderClip)
	return out
}
