package service

import (
	"arwikicats/internal/service/resolver"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	resolver.NewResolver,
	NewLookupService,
	NewLogQueryService,
	NewHealthService,
)
