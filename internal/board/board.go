// Package board holds the static territory template every session is built
// from: the classic 42-territory, 6-continent adjacency graph.
package board

// Node is one territory in the template. The neighbour lists are symmetric
// and refer only to other template names.
type Node struct {
	Name       string
	Continent  string
	Neighbours []string
}

// Size is the number of territories in the template.
const Size = 42

// Template returns the full territory list in its canonical order. Callers
// get a fresh slice but share the backing node data, which is never mutated.
func Template() []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// Names returns the territory names in template order.
func Names() []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

var nodes = []Node{
	{Name: "indonesia", Continent: "oceania", Neighbours: []string{"siam", "western_australia", "new_guinea"}},
	{Name: "new_guinea", Continent: "oceania", Neighbours: []string{"indonesia", "eastern_australia", "western_australia"}},
	{Name: "eastern_australia", Continent: "oceania", Neighbours: []string{"western_australia", "new_guinea"}},
	{Name: "western_australia", Continent: "oceania", Neighbours: []string{"eastern_australia", "new_guinea", "indonesia"}},
	{Name: "ural", Continent: "asia", Neighbours: []string{"ukraine", "siberia", "afghanistan", "china"}},
	{Name: "siberia", Continent: "asia", Neighbours: []string{"ural", "mongolia", "yakutsk", "irkutsk", "china"}},
	{Name: "afghanistan", Continent: "asia", Neighbours: []string{"ukraine", "ural", "middle_east", "china", "india"}},
	{Name: "irkutsk", Continent: "asia", Neighbours: []string{"yakutsk", "siberia", "kamchatka", "mongolia"}},
	{Name: "yakutsk", Continent: "asia", Neighbours: []string{"irkutsk", "siberia", "kamchatka"}},
	{Name: "kamchatka", Continent: "asia", Neighbours: []string{"alaska", "yakutsk", "japan", "irkutsk", "mongolia"}},
	{Name: "middle_east", Continent: "asia", Neighbours: []string{"ukraine", "afghanistan", "india", "egypt", "east_africa", "southern_europe"}},
	{Name: "india", Continent: "asia", Neighbours: []string{"middle_east", "siam", "afghanistan", "china"}},
	{Name: "siam", Continent: "asia", Neighbours: []string{"indonesia", "india", "china"}},
	{Name: "china", Continent: "asia", Neighbours: []string{"ural", "siberia", "afghanistan", "mongolia", "siam", "india"}},
	{Name: "mongolia", Continent: "asia", Neighbours: []string{"irkutsk", "siberia", "kamchatka", "china", "japan"}},
	{Name: "japan", Continent: "asia", Neighbours: []string{"kamchatka", "mongolia"}},
	{Name: "egypt", Continent: "africa", Neighbours: []string{"middle_east", "southern_europe", "north_africa", "east_africa"}},
	{Name: "north_africa", Continent: "africa", Neighbours: []string{"egypt", "southern_europe", "western_europe", "east_africa", "congo", "brazil"}},
	{Name: "east_africa", Continent: "africa", Neighbours: []string{"middle_east", "egypt", "north_africa", "congo", "madagascar", "south_africa"}},
	{Name: "congo", Continent: "africa", Neighbours: []string{"south_africa", "north_africa", "east_africa"}},
	{Name: "south_africa", Continent: "africa", Neighbours: []string{"congo", "madagascar", "east_africa"}},
	{Name: "madagascar", Continent: "africa", Neighbours: []string{"south_africa", "east_africa"}},
	{Name: "brazil", Continent: "South America", Neighbours: []string{"peru", "argentina", "north_africa", "venezuela"}},
	{Name: "peru", Continent: "South America", Neighbours: []string{"brazil", "argentina", "venezuela"}},
	{Name: "argentina", Continent: "South America", Neighbours: []string{"brazil", "peru"}},
	{Name: "venezuela", Continent: "South America", Neighbours: []string{"brazil", "peru", "central_america"}},
	{Name: "iceland", Continent: "europe", Neighbours: []string{"greenland", "uk", "scandinavia"}},
	{Name: "scandinavia", Continent: "europe", Neighbours: []string{"iceland", "uk", "ukraine", "northern_europe"}},
	{Name: "northern_europe", Continent: "europe", Neighbours: []string{"ukraine", "uk", "scandinavia", "southern_europe", "western_europe"}},
	{Name: "western_europe", Continent: "europe", Neighbours: []string{"north_africa", "uk", "northern_europe", "southern_europe"}},
	{Name: "southern_europe", Continent: "europe", Neighbours: []string{"north_africa", "egypt", "northern_europe", "western_europe", "middle_east", "ukraine"}},
	{Name: "uk", Continent: "europe", Neighbours: []string{"western_europe", "iceland", "northern_europe", "scandinavia"}},
	{Name: "ukraine", Continent: "europe", Neighbours: []string{"scandinavia", "ural", "northern_europe", "southern_europe", "afghanistan", "middle_east"}},
	{Name: "greenland", Continent: "North America", Neighbours: []string{"iceland", "quebec", "ontario", "northwest_territory"}},
	{Name: "central_america", Continent: "North America", Neighbours: []string{"venezuela", "eastern_us", "western_us"}},
	{Name: "eastern_us", Continent: "North America", Neighbours: []string{"central_america", "quebec", "ontario", "western_us"}},
	{Name: "western_us", Continent: "North America", Neighbours: []string{"eastern_us", "central_america", "ontario", "alberta"}},
	{Name: "alaska", Continent: "North America", Neighbours: []string{"kamchatka", "alberta", "northwest_territory"}},
	{Name: "alberta", Continent: "North America", Neighbours: []string{"alaska", "western_us", "ontario", "northwest_territory"}},
	{Name: "ontario", Continent: "North America", Neighbours: []string{"greenland", "quebec", "alberta", "western_us", "eastern_us", "northwest_territory"}},
	{Name: "quebec", Continent: "North America", Neighbours: []string{"greenland", "eastern_us", "ontario"}},
	{Name: "northwest_territory", Continent: "North America", Neighbours: []string{"greenland", "alaska", "alberta", "ontario"}},
}
