// Package workers runs the background jobs of both binaries: receipt
// compaction on the remote endpoint and periodic sync on the client.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}
