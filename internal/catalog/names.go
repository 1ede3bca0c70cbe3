package catalog

var residentialNames = []string{
	"Johnson Family",
	"Martinez Residence",
	"Chen Household",
	"Smith Home",
	"Garcia Family",
	"Patel Residence",
	"Williams Home",
	"Brown Family",
	"Davis Household",
	"Rodriguez Home",
	"Wilson Estate",
	"Anderson Residence",
	"Taylor Home",
	"Thomas Family",
	"Moore Household",
	"Jackson Residence",
	"Lee Family",
	"White Home",
	"Harris Residence",
	"Clark Family",
	"Lewis Household",
	"Walker Home",
	"Hall Residence",
	"Allen Family",
	"Young Household",
	"King Residence",
	"Wright Home",
	"Lopez Family",
	"Hill Residence",
	"Green Household",
	"Adams Family",
	"Baker Residence",
	"Nelson Home",
	"Carter Household",
	"Mitchell Residence",
}

var commercialNames = []string{
	"Sunrise Cafe",
	"Metro Office Plaza",
	"Green Valley Apartments",
	"Downtown Restaurant",
	"Riverside Hotel",
	"Oak Street Bakery",
	"Maple Grove Mall",
	"City Center Gym",
	"Harbor View Condos",
	"Westside Warehouse",
	"Pinewood Medical Center",
	"Summit Tech Building",
	"Lakeside Bistro",
	"Parkview Shopping Center",
	"Grand Hotel & Suites",
	"Main Street Deli",
	"Cornerstone Office Park",
	"Sunset Apartments",
	"Valley View Restaurant",
	"Hillside Dental Clinic",
	"Eastside Fitness Club",
	"Pioneer Business Center",
	"Bayshore Condominiums",
	"Crossroads Cafe",
	"Heritage Office Tower",
	"Mountain View Lodge",
	"Central Storage Facility",
	"Northgate Shopping Plaza",
	"Riverside Veterinary Clinic",
	"Skyline Office Complex",
	"Oceanfront Resort",
	"Broadway Theater",
	"Industrial Park East",
	"Gateway Conference Center",
	"Lakeview Retirement Home",
}

// EmployeeFirstNames and EmployeeLastNames feed the employee factory.
var EmployeeFirstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey",
	"Riley", "Jamie", "Quinn", "Avery", "Charlie",
	"Sam", "Drew", "Reese", "Parker", "Skyler",
}

var EmployeeLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones",
	"Garcia", "Martinez", "Davis", "Rodriguez", "Wilson",
	"Anderson", "Taylor", "Thomas", "Moore", "Jackson",
}
