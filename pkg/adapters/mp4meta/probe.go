// Package mp4meta probes MP4 containers for stream metadata without decoding samples.
package mp4meta

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/sceneline/pkg/timeline"
)

// Info describes the video stream of a probed container.
type Info struct {
	Asset timeline.VideoAsset
	// FPS is estimated from the sample count over the media duration.
	// Zero when the duration is unknown.
	FPS float64
}

// Probe reads metadata from an MP4 file. The asset ID is derived from
// the file name without its extension.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	return ProbeReader(f, id)
}

// ProbeReader reads metadata from an io.ReadSeeker holding MP4 data.
func ProbeReader(reader io.ReadSeeker, id string) (*Info, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}

	return fromMoov(id, moov)
}

func fromMoov(id string, moov *mp4.MoovBox) (*Info, error) {
	var videoTrack *mp4.TrakBox
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			videoTrack = trak
			break
		}
	}
	if videoTrack == nil {
		return nil, fmt.Errorf("no video track found")
	}

	asset := timeline.VideoAsset{ID: id}

	// Track header carries dimensions as 16.16 fixed point.
	if videoTrack.Tkhd != nil {
		asset.Width = int(videoTrack.Tkhd.Width >> 16)
		asset.Height = int(videoTrack.Tkhd.Height >> 16)
	}

	// Prefer the media header timescale; fall back to the movie header.
	var duration float64
	if videoTrack.Mdia.Mdhd != nil && videoTrack.Mdia.Mdhd.Timescale > 0 {
		duration = float64(videoTrack.Mdia.Mdhd.Duration) / float64(videoTrack.Mdia.Mdhd.Timescale)
	} else if moov.Mvhd != nil && moov.Mvhd.Timescale > 0 {
		duration = float64(moov.Mvhd.Duration) / float64(moov.Mvhd.Timescale)
	}
	if duration > 0 {
		asset.Duration = duration
		asset.DurationKnown = true
	}

	info := &Info{Asset: asset}

	// Estimate FPS from the sample table when available. Fragmented files
	// keep their samples outside the moov, so the estimate stays zero there.
	if duration > 0 &&
		videoTrack.Mdia.Minf != nil &&
		videoTrack.Mdia.Minf.Stbl != nil &&
		videoTrack.Mdia.Minf.Stbl.Stsz != nil {
		count := videoTrack.Mdia.Minf.Stbl.Stsz.SampleNumber
		if count > 0 {
			info.FPS = float64(count) / duration
		}
	}

	return info, nil
}
