// Package buildvars carries the values injected at link time, e.g.:
//
//	go build -ldflags "-X github.com/xaionaro-go/asciivideo/pkg/buildvars.Version=v0.1.0"
package buildvars

import (
	"runtime/debug"
	"strconv"
	"time"
)

var (
	GitCommit       string
	Version         string
	BuildDateString string
	BuildDate       *time.Time
)

func init() {
	unixTS, err := strconv.ParseInt(BuildDateString, 10, 64)
	if err == nil {
		t := time.Unix(unixTS, 0)
		BuildDate = &t
	}
}

type Vars struct {
	Version   string `json:",omitempty"`
	GitCommit string `json:",omitempty"`
	BuildDate string `json:",omitempty"`
}

type Info struct {
	BuildInfo *debug.BuildInfo `json:",omitempty"`
	BuildVars *Vars            `json:",omitempty"`
}

func GetInfo() Info {
	result := Info{
		BuildVars: &Vars{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDateString,
		},
	}
	if *result.BuildVars == (Vars{}) {
		result.BuildVars = nil
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		result.BuildInfo = bi
	}
	return result
}
