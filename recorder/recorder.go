// Package recorder pipes raw RGBA frames into an ffmpeg process that
// encodes them to a video file.
package recorder

import (
	"fmt"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/skydome/planewarp/log"
	"github.com/skydome/planewarp/options"
)

var logger = log.New("recorder")

// Recorder encodes frames written via WriteFrame. Close flushes the pipe
// and waits for ffmpeg to finish.
type Recorder struct {
	pipe      *io.PipeWriter
	errc      chan error
	frameSize int
}

// New starts the ffmpeg process for a width x height RGBA stream.
func New(width, height int, o options.Options) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": o.FPS,
	}
	outputArgs := ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
		// GL read-back is bottom row first.
		"vf": "vflip",
	}
	switch o.Codec {
	case "hevc":
		outputArgs["c:v"] = "libx265"
	default:
		outputArgs["c:v"] = "libx264"
	}

	pr, pw := io.Pipe()
	cmd := ffmpeg.Input("pipe:", inputArgs).
		Output(o.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pr).ErrorToStdOut()
	if o.FFmpegPath != "" {
		cmd = cmd.SetFfmpegPath(o.FFmpegPath)
	}

	r := &Recorder{
		pipe:      pw,
		errc:      make(chan error, 1),
		frameSize: width * height * 4,
	}
	go func() {
		r.errc <- cmd.Run()
		pr.Close()
	}()

	logger.Noticef("encoding %s (%s)", o.OutputFile, outputArgs["c:v"])
	return r, nil
}

// WriteFrame submits one frame of tightly packed RGBA pixels.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if len(pixels) != r.frameSize {
		return fmt.Errorf("frame size mismatch: got %d bytes, want %d", len(pixels), r.frameSize)
	}
	_, err := r.pipe.Write(pixels)
	return err
}

// Close ends the stream and waits for the encoder to exit.
func (r *Recorder) Close() error {
	r.pipe.Close()
	return <-r.errc
}
