package app

import (
	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/modules/colors"
	"github.com/vk/visiongo/modules/filters"
	"github.com/vk/visiongo/modules/fourier"
	"github.com/vk/visiongo/modules/histogram"
	"github.com/vk/visiongo/modules/impex"
	"github.com/vk/visiongo/modules/sampling"
)

// coreCapabilities is the definitive, ordered list of capability modules
// compiled into the visiongo binary. Order matters only for diagnostic and
// report ordering.
var coreCapabilities = []capability.Module{
	impex.Module{},
	filters.Module{},
	sampling.Module{},
	colors.Module{},
	histogram.Module{},
	fourier.Module{},
}
