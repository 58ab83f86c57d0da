package cmd

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ouaf/widgets/config"
	"github.com/ouaf/widgets/pkg/crop"
	"github.com/ouaf/widgets/pkg/dom"
	"github.com/ouaf/widgets/pkg/frame"
	"github.com/ouaf/widgets/pkg/picker"
	"github.com/ouaf/widgets/util/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const defaultStepTimeout = 30 * time.Second

var (
	errNotImage  = errors.New("not an image")
	errNoSurface = errors.New("image could not be prepared for cropping")
	errStalled   = errors.New("encode produced no result")
)

type cropJob struct {
	aspect   string
	size     string
	outDir   string
	timeout  time.Duration
	tuning   crop.Tuning
	surfaces crop.SurfaceFactory
}

func newCropCmd(tuningPath *string) *cobra.Command {
	var (
		job       cropJob
		jobs      int
		smart     bool
		faceModel string
	)

	cmd := &cobra.Command{
		Use:   "crop FILE...",
		Short: "Crop images to a fixed aspect ratio and output size",
		Long: `Runs each image through the crop pipeline: the file is picked into a
crop scope, framed at the requested aspect ratio, baked at the output size and
re-encoded. PNG sources stay PNG, everything else becomes JPEG. Results are
written as <name>-cropped.<ext>.

The initial frame is placed on detected faces when a face model is configured,
then on the most detailed region when smart framing is on, else centred.`,
		Example: `  # Square 400px avatars next to the originals
  widgets crop --aspect 1/1 --size 400x400 me.png team.jpg

  # Banners into another directory, four at a time
  widgets crop --out banners --jobs 4 photos/*.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tuning, err := LoadTuning(*tuningPath)
			if err != nil {
				return err
			}
			prefs := config.NewAppConfig(newPreferences())
			if !cmd.Flags().Changed("smart") {
				smart = prefs.GetSmartFraming()
			}
			if faceModel == "" {
				faceModel = os.Getenv(config.FaceModelEnvVar)
			}
			if faceModel == "" && prefs.GetFaceFraming() {
				faceModel = prefs.GetFaceModelPath()
			}

			framer, err := buildFramer(tuning.Crop, smart, faceModel)
			if err != nil {
				return err
			}
			job.tuning = tuning.Crop
			job.surfaces = crop.NewSurfaceFactory(framer, crop.ResampleFilter(tuning.Crop.Resample))

			if job.outDir != "" {
				if err := os.MkdirAll(job.outDir, 0o755); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}

			written := make([]string, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(1, jobs))
			for i, path := range args {
				g.Go(func() error {
					dest, err := job.run(ctx, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					written[i] = dest
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, path := range args {
				fmt.Fprintf(out, "%s -> %s\n", path, written[i])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&job.aspect, "aspect", "", "Aspect ratio as W/H (default "+crop.DefaultAspect+")")
	cmd.Flags().StringVar(&job.size, "size", "", "Output size as WxH (default "+crop.DefaultSize+")")
	cmd.Flags().StringVarP(&job.outDir, "out", "o", "", "Output directory (default: next to each source)")
	cmd.Flags().DurationVar(&job.timeout, "timeout", defaultStepTimeout, "Time allowed for each decode and encode")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 2, "Images processed in parallel")
	cmd.Flags().BoolVar(&smart, "smart", true, "Place the initial frame on the most detailed region")
	cmd.Flags().StringVar(&faceModel, "face-model", "", "pigo facefinder cascade used to frame on faces (default $"+config.FaceModelEnvVar+")")

	return cmd
}

// buildFramer chains the configured framers in priority order.
func buildFramer(t crop.Tuning, smart bool, faceModel string) (crop.Framer, error) {
	var chain crop.ChainFramer
	if faceModel != "" {
		ff, err := crop.LoadFaceFramer(faceModel, t.Face)
		if err != nil {
			return nil, err
		}
		chain = append(chain, ff)
	}
	if smart {
		chain = append(chain, crop.NewSmartFramer(crop.ResampleFilter(t.Resample)))
	}
	return append(chain, crop.CenterFramer{}), nil
}

// run crops one file by picking it into a crop scope of a fresh document and
// confirming the session once the surface is ready. It returns the path
// written.
func (j cropJob) run(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	doc := dom.NewDocument()
	scope := doc.Body.AppendChild(doc.CreateElement("form")).AddClass(crop.ScopeClass)
	if j.aspect != "" {
		scope.SetAttr(crop.AspectAttr, j.aspect)
	}
	if j.size != "" {
		scope.SetAttr(crop.SizeAttr, j.size)
	}
	input := scope.AppendChild(doc.CreateElement("input")).SetAttr("type", "file")

	sched := frame.NewManual(time.Now())
	p := crop.NewPipeline(doc, sched, crop.Options{
		Surfaces: j.surfaces,
		Tuning:   j.tuning,
	})
	defer p.Close()

	ic := picker.NewInterceptor(p)
	ic.Install(doc)
	defer ic.Uninstall()

	input.SetFiles(&dom.File{Name: filepath.Base(path), Type: contentType(path, data), Data: data})
	input.Change()
	if ic.Last() == nil {
		return "", errNotImage
	}
	if err := j.await(ctx, sched, ic.Last()); err != nil {
		return "", err
	}
	s := p.Session()
	if s == nil {
		return "", errNotImage
	}
	if s.Surface() == nil {
		return "", errNoSurface
	}
	log.Debugf("crop: %s framed at %v", path, s.Surface().Selection())

	if err := j.await(ctx, sched, p.Confirm()); err != nil {
		return "", err
	}
	if p.Active() {
		return "", errStalled
	}

	result := input.Files()[0]
	dir := j.outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	dest := filepath.Join(dir, result.Name)
	if err := os.WriteFile(dest, result.Data, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

func (j cropJob) await(ctx context.Context, sched *frame.Manual, done <-chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := j.timeout
	if timeout <= 0 {
		timeout = defaultStepTimeout
	}
	if !sched.AwaitContext(ctx, done, timeout) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("timed out after %s", timeout)
	}
	return nil
}

// contentType guesses the MIME type from the extension, then from the content.
func contentType(path string, data []byte) string {
	if typ := mime.TypeByExtension(filepath.Ext(path)); typ != "" {
		if media, _, err := mime.ParseMediaType(typ); err == nil {
			return media
		}
	}
	return http.DetectContentType(data)
}
