package framesource

// StreamInfo is the engine-neutral description of a demuxed stream.
type StreamInfo struct {
	Index             int
	IsVideo           bool
	IsAttachedPicture bool
	Width             int
	Height            int
}

func (s StreamInfo) Area() int {
	return s.Width * s.Height
}

// BestVideoStream picks the video stream with the largest picture, skipping
// attached pictures (cover art). Ties are resolved by the lowest index.
func BestVideoStream(streams []StreamInfo) (StreamInfo, bool) {
	var (
		best  StreamInfo
		found bool
	)
	for _, s := range streams {
		if !s.IsVideo || s.IsAttachedPicture {
			continue
		}
		if !found || s.Area() > best.Area() || (s.Area() == best.Area() && s.Index < best.Index) {
			best, found = s, true
		}
	}
	return best, found
}
