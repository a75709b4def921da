package permissions

// Functional areas of the console that permissions are scoped to.
const (
	ModuleAdministration = "Administration"
	ModuleProcessing     = "Processing"
	ModuleAssetRecovery  = "AssetRecovery"
	ModuleShipments      = "Shipments"
	ModuleDownstream     = "DownstreamMaterials"
	ModuleReports        = "Reports"
)

// Modules lists the functional areas known to the console.
func Modules() []string {
	return []string{
		ModuleAdministration,
		ModuleProcessing,
		ModuleAssetRecovery,
		ModuleShipments,
		ModuleDownstream,
		ModuleReports,
	}
}

// CRUD returns Read, Create, Update and Delete on module.
func CRUD(module string) []Permission {
	return []Permission{
		{Module: module, Action: ActionRead},
		{Module: module, Action: ActionCreate},
		{Module: module, Action: ActionUpdate},
		{Module: module, Action: ActionDelete},
	}
}
