package service

import "strings"

// curatedImages is the fixed set of display images; no external image API is
// involved.
var curatedImages = []string{
	"https://images.unsplash.com/photo-1563379926898-05f4575a45d8?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // spicy food
	"https://images.unsplash.com/photo-1621996346565-e3dbc353d2e5?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // pasta
	"https://images.unsplash.com/photo-1546069902-ba9599a7e63c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",    // healthy food
	"https://images.unsplash.com/photo-1544025162-0be1a038a1b8?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",    // vegetables
	"https://images.unsplash.com/photo-1499636136210-6026e6c0e231?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // dessert
	"https://images.unsplash.com/photo-1504674900204-0697e668a1c7?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // general cooking
	"https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",    // breakfast
	"https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // pizza
	"https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // sushi
	"https://images.unsplash.com/photo-1513104890138-7c749659a591?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // burger
	"https://images.unsplash.com/photo-1473093295043-cdd812d0e601?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // soup
	"https://images.unsplash.com/photo-1482049016688-2d3e1b311543?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80", // smoothie
}

// imageCategories maps title keywords to a curated image, checked in order:
// the first category with any keyword present in the title wins.
var imageCategories = []struct {
	keywords []string
	image    int
}{
	{[]string{"pasta", "noodle", "spaghetti"}, 1},
	{[]string{"salad", "vegetable", "green"}, 3},
	{[]string{"dessert", "cake", "cookie", "sweet"}, 4},
	{[]string{"spicy", "chili", "hot"}, 0},
	{[]string{"healthy", "bowl", "grain"}, 2},
	{[]string{"breakfast", "egg", "pancake"}, 6},
	{[]string{"pizza", "italian"}, 7},
	{[]string{"sushi", "japanese", "asian"}, 8},
	{[]string{"burger", "sandwich", "meat"}, 9},
	{[]string{"soup", "stew", "broth"}, 10},
	{[]string{"smoothie", "drink", "juice"}, 11},
}

// SelectImage maps a recipe title to a curated image. Deterministic for any
// title containing a recognized keyword; otherwise a uniformly random pick
// from the curated set.
func SelectImage(title string, rng Rand) string {
	lower := strings.ToLower(title)
	for _, cat := range imageCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return curatedImages[cat.image]
			}
		}
	}
	return curatedImages[rng.Intn(len(curatedImages))]
}
