package assistant_fx

import (
	"go.uber.org/fx"

	"vanplan/internal/services"
	mem "vanplan/pkg/memcache"
	"vanplan/pkg/utils"
)

var Module = fx.Provide(
	ProvideExtractService,
	ProvideEnrichService,
	ProvideAssistantService,
	ProvideMapViewService,
	ProvideInfoService)

func ProvideExtractService() services.ExtractServiceInterface {
	return services.NewExtractService()
}

func ProvideEnrichService(forecast services.ForecastServiceInterface) services.EnrichServiceInterface {
	return services.NewEnrichService(forecast)
}

// ProvideAssistantService creates the assistant service with all dependencies
func ProvideAssistantService(
	planner utils.PlannerClientInterface,
	extract services.ExtractServiceInterface,
	enrich services.EnrichServiceInterface,
	store mem.ConversationStore,
) services.AssistantServiceInterface {
	return services.NewAssistantService(planner, extract, enrich, store)
}

func ProvideMapViewService(store mem.ConversationStore) services.MapViewServiceInterface {
	return services.NewMapViewService(store)
}

func ProvideInfoService() services.InfoServiceInterface {
	return services.NewInfoService()
}
