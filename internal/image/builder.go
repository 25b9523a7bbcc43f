package image

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types"
	imagetypes "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/mattn/go-isatty"

	"github.com/hiptraveler/agentctl/internal/models"
)

// Builder produces and pushes the service image through the Docker Engine
// API. The engine does the heavy lifting; a failed build step aborts the
// whole build with the engine's own message.
type Builder struct {
	cli *client.Client
	out io.Writer
}

// NewBuilder connects to the local Docker Engine using the standard
// environment configuration (DOCKER_HOST et al).
func NewBuilder() (*Builder, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, &models.BuildError{Step: "connect", Cause: err}
	}
	return &Builder{cli: cli, out: os.Stdout}, nil
}

// Close releases the engine connection.
func (b *Builder) Close() error {
	return b.cli.Close()
}

// Build tars contextDir, injects the rendered Dockerfile, and streams the
// engine's build output. Any Dockerfile already present in contextDir is
// replaced by the rendered recipe so the declaration stays authoritative.
func (b *Builder) Build(ctx context.Context, contextDir string, spec *Spec, tag string) error {
	buildCtx, err := tarBuildContext(contextDir, spec.Render())
	if err != nil {
		return &models.BuildError{Image: tag, Step: "context", Cause: err}
	}

	resp, err := b.cli.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return &models.BuildError{Image: tag, Step: "build", Cause: err}
	}
	defer resp.Body.Close()

	if err := b.streamMessages(resp.Body); err != nil {
		return &models.BuildError{Image: tag, Step: "build", Cause: err}
	}
	return nil
}

// Push uploads the tagged image to its registry using the provided
// credentials.
func (b *Builder) Push(ctx context.Context, tag string, auth registry.AuthConfig) error {
	encoded, err := registry.EncodeAuthConfig(auth)
	if err != nil {
		return &models.BuildError{Image: tag, Step: "login", Cause: err}
	}

	rd, err := b.cli.ImagePush(ctx, tag, imagetypes.PushOptions{RegistryAuth: encoded})
	if err != nil {
		return &models.BuildError{Image: tag, Step: "push", Cause: err}
	}
	defer rd.Close()

	if err := b.streamMessages(rd); err != nil {
		return &models.BuildError{Image: tag, Step: "push", Cause: err}
	}
	return nil
}

func (b *Builder) streamMessages(rd io.Reader) error {
	fd := uintptr(0)
	isTerm := false
	if f, ok := b.out.(*os.File); ok {
		fd = f.Fd()
		isTerm = isatty.IsTerminal(fd)
	}
	return jsonmessage.DisplayJSONMessagesStream(rd, b.out, fd, isTerm, nil)
}

// tarBuildContext packs dir into an in-memory tar stream with the rendered
// Dockerfile as the first entry. Hidden VCS directories are skipped.
func tarBuildContext(dir, dockerfile string) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	if err := tw.WriteHeader(&tar.Header{
		Name: "Dockerfile",
		Mode: 0o644,
		Size: int64(len(dockerfile)),
	}); err != nil {
		return nil, err
	}
	if _, err := tw.Write([]byte(dockerfile)); err != nil {
		return nil, err
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if info.IsDir() {
			if info.Name() == ".git" || info.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == "Dockerfile" || strings.HasSuffix(rel, ".pyc") {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pack build context %s: %w", dir, err)
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}
