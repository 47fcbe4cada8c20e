package systems

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/luthadel/engine/core"
	"github.com/spaghettifunk/luthadel/engine/renderer/components"
)

// CameraSystemConfig is the configuration for a CameraSystem.
type CameraSystemConfig struct {
	// MaxCameraCount is the maximum number of cameras that can be managed
	// by the repository at once.
	MaxCameraCount uint16
}

type cameraEntry struct {
	name           string
	camera         *components.Camera
	referenceCount uint16
	inUse          bool
}

// CameraSystem is the reference-counted registry of cameras, the Camera
// Repository component. Unlike the texture/geometry/material systems, it is
// held as an instantiated struct rather than a package singleton, matching
// the shader/render-view systems' shape.
type CameraSystem struct {
	config  CameraSystemConfig
	lookup  map[string]int
	entries []*cameraEntry
	// default is eagerly created, never released, and never destroyed.
	defaultCamera *components.Camera
}

// NewCameraSystem constructs a camera repository with its default
// camera already created.
func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		return nil, fmt.Errorf("camera repository: MaxCameraCount must be > 0")
	}
	return &CameraSystem{
		config:        *config,
		lookup:        make(map[string]int, config.MaxCameraCount),
		entries:       make([]*cameraEntry, 0, config.MaxCameraCount),
		defaultCamera: components.NewCamera(),
	}, nil
}

// Shutdown releases repository bookkeeping. Cameras have no backend
// resources of their own (they're plain CPU transforms), so there is
// nothing to destroy beyond dropping references.
func (r *CameraSystem) Shutdown() error {
	r.entries = nil
	r.lookup = nil
	return nil
}

// Acquire returns the named camera, creating it with a reference count of
// one if it does not yet exist, or incrementing the reference count of an
// existing one. The repository's default camera is returned, un-counted,
// for the reserved default name or for an empty name.
func (r *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == "" || strings.EqualFold(name, components.DEFAULT_CAMERA_NAME) {
		return r.defaultCamera, nil
	}

	if idx, ok := r.lookup[name]; ok {
		entry := r.entries[idx]
		entry.referenceCount++
		return entry.camera, nil
	}

	if len(r.entries) >= int(r.config.MaxCameraCount) {
		err := fmt.Errorf("camera repository: max camera count (%d) reached, cannot acquire '%s'", r.config.MaxCameraCount, name)
		core.LogError(err.Error())
		return nil, err
	}

	entry := &cameraEntry{
		name:           name,
		camera:         components.NewCamera(),
		referenceCount: 1,
		inUse:          true,
	}
	r.entries = append(r.entries, entry)
	r.lookup[name] = len(r.entries) - 1

	return entry.camera, nil
}

// Release decrements the named camera's reference count. When it reaches
// zero the camera is reset in place and its name freed for reuse; the
// default camera can never be released.
func (r *CameraSystem) Release(name string) {
	if name == "" || strings.EqualFold(name, components.DEFAULT_CAMERA_NAME) {
		core.LogDebug("camera repository: cannot release the default camera, nothing was done")
		return
	}

	idx, ok := r.lookup[name]
	if !ok {
		core.LogWarn("camera repository: release of unknown camera '%s', nothing was done", name)
		return
	}

	entry := r.entries[idx]
	if entry.referenceCount > 0 {
		entry.referenceCount--
	}
	if entry.referenceCount == 0 {
		entry.camera.Reset()
		entry.inUse = false
		delete(r.lookup, name)
	}
}

// GetDefault returns the repository's default camera.
func (r *CameraSystem) GetDefault() *components.Camera {
	return r.defaultCamera
}
