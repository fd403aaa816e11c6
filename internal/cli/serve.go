package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/shoplist/internal/ui"
	"github.com/idilsaglam/shoplist/internal/web"
)

func doServe(opt Options) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := web.Serve(ctx, opt.Addr, opt.Store); err != nil {
		ui.Fail("serve: " + err.Error())
		return 1
	}
	return 0
}
