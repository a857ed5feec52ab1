package astiavlogger

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astiav"
	"github.com/iancoleman/strcase"
)

var classCategoryNames = map[astiav.ClassCategory]string{
	astiav.ClassCategoryBitstreamFilter: "BitstreamFilter",
	astiav.ClassCategoryDecoder:         "Decoder",
	astiav.ClassCategoryDemuxer:         "Demuxer",
	astiav.ClassCategoryEncoder:         "Encoder",
	astiav.ClassCategoryFilter:          "Filter",
	astiav.ClassCategoryInput:           "Input",
	astiav.ClassCategoryMuxer:           "Muxer",
	astiav.ClassCategoryNa:              "Na",
	astiav.ClassCategoryOutput:          "Output",
	astiav.ClassCategorySwresampler:     "Swresampler",
	astiav.ClassCategorySwscaler:        "Swscaler",
}

func ClassCategoryToString(cat astiav.ClassCategory) string {
	if name, ok := classCategoryNames[cat]; ok {
		return strcase.ToSnake(name)
	}
	return fmt.Sprintf("class_category_%d", cat)
}

// ClassChain describes the emitting component and its parents, for example
// "[decoder]h264->[demuxer]mov,mp4,m4a,3gp,3g2,mj2".
func ClassChain(c astiav.Classer) string {
	if c == nil {
		return ""
	}
	var chain []string
	for cl := c.Class(); cl != nil; cl = cl.Parent() {
		chain = append(chain, fmt.Sprintf("[%s]%s", ClassCategoryToString(cl.Category()), cl.ItemName()))
	}
	return strings.Join(chain, "->")
}
