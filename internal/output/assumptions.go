package output

// DefaultAssumptions lists the statutory rules applied by the engine, rendered
// in detailed outputs.
var DefaultAssumptions = []string{
	"Bonuses follow the bonus table assigned to the entitlement date; later entitlements use the current table",
	"Minimum pension floor applies from 07/2016 (and from entitlement for Law 148/2019)",
	"Law 30/1992 addition: 25% of normal basic pension, between 20 and 35, for 07/1992 to 12/2019 entitlements",
	"Monthly disbursement commission: 1 before 2020 (2 for Law 79 variable pension from 02/2014), amount - floor(amount x 0.998) from 2020",
	"Grant disbursement commission: 1 before 2020, 0.2% capped at 20 from 2020",
	"Exceptional grants: 300 from 11/2022 and 300 from 10/2023",
}
