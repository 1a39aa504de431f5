package geo

import "github.com/verte-zerg/insidash/internal/textnorm"

// Approximate province centroids, keyed by normalized province name.
var provinceCentroids = map[string][2]float64{
	"aceh":                {4.695, 96.749},
	"sumatera utara":      {2.115, 99.545},
	"sumatera barat":      {-0.739, 100.8},
	"riau":                {0.51, 101.438},
	"kepri":               {3.945, 108.142},
	"jambi":               {-1.61, 103.612},
	"sumatera selatan":    {-3.319, 104.914},
	"bengkulu":            {-3.518, 102.535},
	"lampung":             {-4.558, 105.406},
	"bangka belitung":     {-2.322, 106.09},
	"jakarta":             {-6.2, 106.816},
	"jawa barat":          {-6.889, 107.64},
	"jawa tengah":         {-7.15, 110.14},
	"yogyakarta":          {-7.795, 110.369},
	"jawa timur":          {-7.536, 112.238},
	"banten":              {-6.405, 106.064},
	"bali":                {-8.455, 115.195},
	"nusa tenggara barat": {-8.652, 117.361},
	"nusa tenggara timur": {-9.007, 124.125},
	"kalimantan barat":    {0.132, 111.096},
	"kalimantan tengah":   {-1.618, 113.382},
	"kalimantan selatan":  {-3.092, 115.283},
	"kalimantan timur":    {0.537, 116.419},
	"kalimantan utara":    {3.014, 116.002},
	"sulawesi utara":      {1.493, 124.845},
	"sulawesi tengah":     {-1.43, 121.445},
	"sulawesi selatan":    {-3.668, 119.974},
	"sulawesi tenggara":   {-4.144, 122.174},
	"gorontalo":           {0.699, 122.446},
	"sulawesi barat":      {-2.512, 119.325},
	"maluku":              {-3.118, 129.463},
	"maluku utara":        {1.57, 127.808},
	"papua":               {-4.269, 138.08},
	"papua barat":         {-1.336, 133.174},
	"papua barat daya":    {-0.869, 131.26},
	"papua selatan":       {-6.234, 140.311},
	"papua tengah":        {-3.777, 137.001},
	"papua pegunungan":    {-4.1, 138.7},
}

var provinceAliases = map[string]string{
	"dki jakarta":                   "jakarta",
	"daerah khusus ibukota jakarta": "jakarta",
	"di yogyakarta":                 "yogyakarta",
	"d i yogyakarta":                "yogyakarta",
	"diy":                           "yogyakarta",
	"kepulauan bangka belitung":     "bangka belitung",
	"kep bangka belitung":           "bangka belitung",
	"kepulauan riau":                "kepri",
	"kep riau":                      "kepri",
	"ntt":                           "nusa tenggara timur",
	"ntb":                           "nusa tenggara barat",
}

// ProvinceKey normalizes a province name and resolves known aliases.
func ProvinceKey(name string) string {
	key := textnorm.Alnum(name)
	if alias, ok := provinceAliases[key]; ok {
		return alias
	}
	return key
}

// Centroid returns the centroid for a province name.
func Centroid(name string) (lat, lon float64, ok bool) {
	c, ok := provinceCentroids[ProvinceKey(name)]
	if !ok {
		return 0, 0, false
	}
	return c[0], c[1], true
}
