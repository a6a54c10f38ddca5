package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/TheShiveshNetwork/create-express-app/internal/output"
)

// Refs names the two dependency groups of a manifest. Each list is ordered
// and duplicate-free; a reference may appear in both groups.
type Refs struct {
	Runtime     []string
	Development []string
}

// Resolution maps each reference to a caret-style version constraint, split
// back into the manifest's two groups.
type Resolution struct {
	Runtime     map[string]string
	Development map[string]string
}

// Resolver resolves every reference of a Refs set concurrently.
type Resolver struct {
	client *Client
}

// NewResolver creates a resolver backed by the given registry client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve issues one lookup per distinct reference, all in flight together,
// and joins the outcomes after every lookup has settled.
//
// Semantics are all-or-nothing: if any lookup fails, the whole resolution
// fails and no partial result is returned. Callers must treat a nil
// Resolution as total failure.
func (r *Resolver) Resolve(ctx context.Context, refs Refs) (*Resolution, error) {
	names := distinct(refs.Runtime, refs.Development)
	if len(names) == 0 {
		return &Resolution{
			Runtime:     map[string]string{},
			Development: map[string]string{},
		}, nil
	}

	output.Verbose(fmt.Sprintf("resolving %d package references", len(names)))

	type lookup struct {
		name    string
		version string
		err     error
	}

	results := make(chan lookup, len(names))
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			version, err := r.client.LatestVersion(ctx, name)
			results <- lookup{name: name, version: version, err: err}
		}(name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	versions := make(map[string]string, len(names))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		versions[res.name] = "^" + res.version
	}
	if firstErr != nil {
		return nil, fmt.Errorf("dependency resolution failed: %w", firstErr)
	}

	return &Resolution{
		Runtime:     pick(versions, refs.Runtime),
		Development: pick(versions, refs.Development),
	}, nil
}

// distinct flattens the groups into one duplicate-free lookup list,
// preserving first-seen order.
func distinct(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, name := range group {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

func pick(versions map[string]string, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = versions[name]
	}
	return out
}
