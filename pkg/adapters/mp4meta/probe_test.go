package mp4meta

import (
	"math"
	"testing"

	"github.com/Eyevinn/mp4ff/mp4"
)

func videoTrak(timescale uint32, duration uint64, width, height uint32, samples uint32) *mp4.TrakBox {
	return &mp4.TrakBox{
		Tkhd: &mp4.TkhdBox{
			TrackID: 1,
			Width:   mp4.Fixed32(width << 16),
			Height:  mp4.Fixed32(height << 16),
		},
		Mdia: &mp4.MdiaBox{
			Hdlr: &mp4.HdlrBox{HandlerType: "vide"},
			Mdhd: &mp4.MdhdBox{Timescale: timescale, Duration: duration},
			Minf: &mp4.MinfBox{
				Stbl: &mp4.StblBox{
					Stsz: &mp4.StszBox{SampleNumber: samples},
				},
			},
		},
	}
}

func TestFromMoov_VideoTrack(t *testing.T) {
	moov := &mp4.MoovBox{
		Mvhd:  &mp4.MvhdBox{Timescale: 1000, Duration: 12400},
		Traks: []*mp4.TrakBox{videoTrak(30000, 372000, 640, 360, 372)},
	}

	info, err := fromMoov("video-1", moov)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	asset := info.Asset
	if asset.ID != "video-1" {
		t.Errorf("expected ID video-1, got %s", asset.ID)
	}
	if !asset.DurationKnown {
		t.Fatal("expected duration to be known")
	}
	if math.Abs(asset.Duration-12.4) > 1e-9 {
		t.Errorf("expected duration 12.4, got %f", asset.Duration)
	}
	if asset.Width != 640 || asset.Height != 360 {
		t.Errorf("expected 640x360, got %dx%d", asset.Width, asset.Height)
	}
	if math.Abs(info.FPS-30.0) > 1e-9 {
		t.Errorf("expected 30 fps, got %f", info.FPS)
	}
}

func TestFromMoov_NoVideoTrack(t *testing.T) {
	moov := &mp4.MoovBox{
		Mvhd: &mp4.MvhdBox{Timescale: 1000, Duration: 5000},
		Traks: []*mp4.TrakBox{
			{
				Tkhd: &mp4.TkhdBox{TrackID: 1},
				Mdia: &mp4.MdiaBox{Hdlr: &mp4.HdlrBox{HandlerType: "soun"}},
			},
		},
	}

	if _, err := fromMoov("video-1", moov); err == nil {
		t.Error("expected error for missing video track")
	}
}

func TestFromMoov_MvhdFallback(t *testing.T) {
	trak := videoTrak(0, 0, 320, 240, 0)
	moov := &mp4.MoovBox{
		Mvhd:  &mp4.MvhdBox{Timescale: 600, Duration: 3000},
		Traks: []*mp4.TrakBox{trak},
	}

	info, err := fromMoov("clip", moov)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Asset.DurationKnown {
		t.Fatal("expected duration to be known")
	}
	if math.Abs(info.Asset.Duration-5.0) > 1e-9 {
		t.Errorf("expected duration 5.0, got %f", info.Asset.Duration)
	}
	// No sample table entries means no frame-rate estimate.
	if info.FPS != 0 {
		t.Errorf("expected zero fps estimate, got %f", info.FPS)
	}
}

func TestFromMoov_ZeroDuration(t *testing.T) {
	moov := &mp4.MoovBox{
		Mvhd:  &mp4.MvhdBox{Timescale: 1000, Duration: 0},
		Traks: []*mp4.TrakBox{videoTrak(0, 0, 640, 360, 0)},
	}

	info, err := fromMoov("live", moov)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Asset.DurationKnown {
		t.Error("expected unknown duration")
	}
}
