// Package batch applies one cover art operation to many MP3 files.
//
// # Runner
//
// The Runner fans an operation out over distinct files:
//
//	runner := batch.NewRunner(settings.MaxConcurrentFiles, func(event batch.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	results, err := runner.Run(ctx, files, func(ctx context.Context, path string) (string, error) {
//	    n, err := svc.Remove(ctx, path)
//	    return fmt.Sprintf("removed %d picture(s)", n), err
//	})
//
// # Concurrency
//
// Each file is still one synchronous read-modify-write cycle. The runner
// only overlaps different files, at most MaxConcurrentFiles at a time, and
// collapses duplicate paths so no file is rewritten by two goroutines.
//
// # Failures
//
// A failing file does not stop the others. Run returns a Result per file
// in input order, and an error summarizing how many files failed.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Path    string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package batch
