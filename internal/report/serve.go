package report

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/roboblog/suite/pkg/fileutil"
	"golang.org/x/sync/errgroup"
)

// Serve exposes the HTML coverage report directory over local HTTP until ctx
// is canceled.
func Serve(ctx context.Context, dir, addr string) error {
	if !fileutil.DirExists(dir) {
		return errors.Errorf("coverage report %q does not exist, run \"suite test-coverage\" first", dir)
	}
	router := httprouter.New()
	router.ServeFiles("/*filepath", http.Dir(dir))
	srv := &http.Server{Addr: addr, Handler: router}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
