// Package all registers every engine family with the engine registry.
package all

import (
	_ "github.com/chihaya/brng/engine/arc4"
	_ "github.com/chihaya/brng/engine/chacha"
	_ "github.com/chihaya/brng/engine/dsfmt"
	_ "github.com/chihaya/brng/engine/efiix"
	_ "github.com/chihaya/brng/engine/gjrand"
	_ "github.com/chihaya/brng/engine/hc"
	_ "github.com/chihaya/brng/engine/isaac"
	_ "github.com/chihaya/brng/engine/jsf"
	_ "github.com/chihaya/brng/engine/lcg"
	_ "github.com/chihaya/brng/engine/lfsr"
	_ "github.com/chihaya/brng/engine/lxm"
	_ "github.com/chihaya/brng/engine/mrg"
	_ "github.com/chihaya/brng/engine/mt"
	_ "github.com/chihaya/brng/engine/mwc"
	_ "github.com/chihaya/brng/engine/pcg"
	_ "github.com/chihaya/brng/engine/philox"
	_ "github.com/chihaya/brng/engine/rarns"
	_ "github.com/chihaya/brng/engine/romu"
	_ "github.com/chihaya/brng/engine/salsa"
	_ "github.com/chihaya/brng/engine/sfc"
	_ "github.com/chihaya/brng/engine/sfmt"
	_ "github.com/chihaya/brng/engine/speck"
	_ "github.com/chihaya/brng/engine/splitmix"
	_ "github.com/chihaya/brng/engine/squares"
	_ "github.com/chihaya/brng/engine/swc"
	_ "github.com/chihaya/brng/engine/threefry"
	_ "github.com/chihaya/brng/engine/trivium"
	_ "github.com/chihaya/brng/engine/tyche"
	_ "github.com/chihaya/brng/engine/well"
	_ "github.com/chihaya/brng/engine/xoroshiro"
	_ "github.com/chihaya/brng/engine/xoshiro"
	_ "github.com/chihaya/brng/engine/xsm"

	_ "github.com/chihaya/brng/pkg/xorshift"
)
