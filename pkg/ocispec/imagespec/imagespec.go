// Package imagespec provides the typed model for the ImageV1 image
// configuration document, the JSON blob addressed by a Schema 2 manifest's
// config descriptor.
package imagespec

import (
	"encoding/json"

	"github.com/wuxler/imgpull/pkg/errdefs"
	"github.com/wuxler/imgpull/pkg/ocispec/platform"
)

// ImageV1 is the image configuration JSON: date created, author, and the
// execution/runtime defaults (entrypoint, args, env, volumes) that SHOULD
// be used as a base when running a container from this image. Changing it
// means creating a new derived image, not mutating this one.
type ImageV1 struct {
	Created      *string           `json:"created,omitempty"`
	Author       *string           `json:"author,omitempty"`
	Architecture platform.Architecture `json:"architecture"`
	OS           platform.OS           `json:"os"`
	Config       *ConfigV1         `json:"config,omitempty"`
	RootFS       RootFSV1          `json:"rootfs"`
	History      []HistoryV1       `json:"history,omitempty"`
}

// Parse decodes an ImageV1 document from bytes.
func Parse(data []byte) (*ImageV1, error) {
	var img ImageV1
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, errdefs.NewE(errdefs.ErrInvalidParameter, err)
	}
	return &img, nil
}

// emptyObject is the unit value used to represent Go's map[string]struct{}
// as a JSON object mapping keys to "{}".
type emptyObject struct{}

// PortSet mirrors the Go type map[string]struct{} used for ExposedPorts:
// keys look like "80/tcp", values carry no information and serialize as an
// empty JSON object.
type PortSet map[string]emptyObject

// VolumeSet mirrors the Go type map[string]struct{} used for Volumes.
type VolumeSet map[string]emptyObject

// ConfigV1 carries the execution parameters used as a base when running a
// container from the image. Field names on the wire are capitalized,
// matching the Docker/OCI image spec exactly.
type ConfigV1 struct {
	User         string            `json:"User,omitempty"`
	ExposedPorts PortSet           `json:"ExposedPorts,omitempty"`
	Env          []string          `json:"Env,omitempty"`
	Entrypoint   []string          `json:"Entrypoint,omitempty"`
	Cmd          []string          `json:"Cmd,omitempty"`
	Volumes      VolumeSet         `json:"Volumes,omitempty"`
	WorkingDir   string            `json:"WorkingDir,omitempty"`
	Labels       map[string]string `json:"Labels,omitempty"`
	StopSignal   string            `json:"StopSignal,omitempty"`
}

// RootFSV1 references the layer content addresses (diff IDs) used by the
// image, ordered first to last.
type RootFSV1 struct {
	// Type is "layers" in conforming documents; Parse does not check it,
	// and nothing in this module rejects another value.
	Type    string   `json:"type"`
	DiffIDs []string `json:"diff_ids"`
}

// HistoryV1 describes one layer's build history, ordered first to last.
type HistoryV1 struct {
	Created    *string `json:"created,omitempty"`
	Author     *string `json:"author,omitempty"`
	CreatedBy  *string `json:"created_by,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	EmptyLayer *bool   `json:"empty_layer,omitempty"`
}
