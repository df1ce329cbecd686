package portset

import (
	"errors"
	"os"

	"github.com/neovim/go-client/nvim"
)

var errNoNvim = errors.New("NVIM_LISTEN_ADDRESS not set")

// NvimReloader makes a running Neovim re-read buffers whose files changed on disk.
type NvimReloader struct {
	addr string
}

func NewNvimReloader() *NvimReloader {
	return &NvimReloader{addr: os.Getenv("NVIM_LISTEN_ADDRESS")}
}

func (r *NvimReloader) Reload(path string) error {
	if r.addr == "" {
		return errNoNvim
	}
	v, err := nvim.Dial(r.addr)
	if err != nil {
		return err
	}
	defer v.Close()

	b := v.NewBatch()
	b.Command("checktime")
	return b.Execute()
}
