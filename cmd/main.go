package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"

	"github.com/skydome/planewarp/config"
	"github.com/skydome/planewarp/graphics/glbackend"
	"github.com/skydome/planewarp/host"
	"github.com/skydome/planewarp/log"
	"github.com/skydome/planewarp/options"
	"github.com/skydome/planewarp/recorder"
	"github.com/skydome/planewarp/shader"
	"github.com/skydome/planewarp/warp"
)

var logger = log.New("planewarp")

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	app := cli.NewApp()
	app.Name = "planewarp"
	app.Usage = "planetarium dome warp viewer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to TOML settings file",
		},
		cli.StringFlag{
			Name:  "shaders",
			Usage: "directory holding FullscreenQuad.vert/.frag",
		},
		cli.BoolFlag{
			Name:  "no-vsync",
			Usage: "disable vertical sync",
		},
		cli.BoolFlag{
			Name:  "no-watch",
			Usage: "disable shader hot reload",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "open the warper window",
			Action: runAction,
		},
		{
			Name:  "record",
			Usage: "render the warp offscreen and encode it to a video file",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "duration",
					Usage: "seconds to record",
					Value: 10.0,
				},
				cli.IntFlag{
					Name:  "fps",
					Usage: "frames per second",
					Value: 60,
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "output file name",
					Value: "output.mp4",
				},
				cli.StringFlag{
					Name:  "codec",
					Usage: "video codec (h264 or hevc)",
				},
				cli.StringFlag{
					Name:  "ffmpeg",
					Usage: "path to the ffmpeg executable",
				},
			},
			Action: recordAction,
		},
	}
	app.Action = runAction

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// resolveOptions layers defaults, the config file and global flags.
func resolveOptions(c *cli.Context) (options.Options, error) {
	switch {
	case c.GlobalBool("vv"):
		log.SetLevel(log.Debug)
	case c.GlobalBool("v"):
		log.SetLevel(log.Info)
	}

	o := options.Default()
	if path := c.GlobalString("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return o, err
		}
		f.Apply(&o)
	}
	if c.GlobalIsSet("shaders") {
		o.ShaderDir = c.GlobalString("shaders")
	}
	if c.GlobalBool("no-vsync") {
		o.VSync = false
	}
	return o, nil
}

func runAction(c *cli.Context) error {
	o, err := resolveOptions(c)
	if err != nil {
		return err
	}

	api := glbackend.New()
	prog := warp.New(api, o.ShaderDir)

	if !c.GlobalBool("no-watch") && o.ShaderDir != "" {
		watcher, err := shader.Watch(o.ShaderDir)
		if err != nil {
			logger.Warningf("shader hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			prog.WatchShaders(watcher.Changes())
		}
	}

	return host.Run(prog, host.Options{
		API:     api,
		VSync:   o.VSync,
		Visible: true,
	})
}

func recordAction(c *cli.Context) error {
	o, err := resolveOptions(c)
	if err != nil {
		return err
	}
	if c.IsSet("duration") {
		o.Duration = c.Float64("duration")
	}
	if c.IsSet("fps") {
		o.FPS = c.Int("fps")
	}
	if c.IsSet("output") {
		o.OutputFile = c.String("output")
	}
	if c.IsSet("codec") {
		o.Codec = c.String("codec")
	}
	if c.IsSet("ffmpeg") {
		o.FFmpegPath = c.String("ffmpeg")
	}

	api := glbackend.New()
	prog := warp.New(api, o.ShaderDir)

	rec, err := recorder.New(warp.WindowWidth, warp.WindowHeight, o)
	if err != nil {
		return err
	}

	runErr := host.Record(prog, host.Options{API: api, Visible: false}, o.Duration, o.FPS, rec)
	closeErr := rec.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}
