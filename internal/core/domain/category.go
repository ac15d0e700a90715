package domain

import "fmt"

// CategoryNoInformation is the ADS-B category reported when nothing is known.
const CategoryNoInformation = 0

var categoryLabels = map[int]string{
	0:  "No information",
	1:  "No ADS-B category",
	2:  "Light aircraft (< 15500 lbs)",
	3:  "Small aircraft (15500-75000 lbs)",
	4:  "Large aircraft (75000-300000 lbs)",
	5:  "High Vortex Large",
	6:  "Heavy aircraft (> 300000 lbs)",
	7:  "High Performance",
	8:  "Rotorcraft",
	9:  "Glider/Sailplane",
	10: "Lighter-than-air",
	11: "Parachutist/Skydiver",
	12: "Ultralight",
	14: "Unmanned Aerial Vehicle",
	15: "Space/Trans-atmospheric",
	16: "Emergency Vehicle",
	17: "Service Vehicle",
	18: "Point Obstacle",
	19: "Cluster Obstacle",
	20: "Line Obstacle",
}

// DescribeCategory returns the label for an OpenSky aircraft category code.
// Unknown codes yield "Category N".
func DescribeCategory(code int) string {
	if label, ok := categoryLabels[code]; ok {
		return label
	}
	return fmt.Sprintf("Category %d", code)
}
