// Package cachekey derives stable cache keys from plugin configuration.
package cachekey

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/hmans/sanityimage/internal/config"
)

// Namespace separates keys derived from the same configuration for different caches.
type Namespace string

const (
	ImageExtensions Namespace = "image-ext"
	Documents       Namespace = "documents"
	Schema          Namespace = "schema"
)

var ErrIncompleteConfig = zerr.New("configuration is missing project id or dataset")

// Derive returns a deterministic key for cfg within ns.
// Configurations that share project id, dataset and overlay mode yield the same key;
// fields are length-prefixed before hashing so distinct values never share an encoding.
func Derive(cfg config.Config, ns Namespace) (string, error) {
	if cfg.ProjectID == "" || cfg.Dataset == "" {
		return "", zerr.With(zerr.With(ErrIncompleteConfig, "project_id", cfg.ProjectID), "dataset", cfg.Dataset)
	}

	d := xxhash.New()
	for _, part := range []string{cfg.ProjectID, cfg.Dataset, cfg.OverlayMode(), string(ns)} {
		_, _ = d.WriteString(strconv.Itoa(len(part)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(part)
	}

	return fmt.Sprintf("%s-%016x", ns, d.Sum64()), nil
}
