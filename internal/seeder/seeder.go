// Package seeder fills empty stores with demo data at boot.
package seeder

import (
	"context"
	"fmt"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context) error
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context) error {
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
