package geomodel

//go:generate go tool easyjson -all info.go

// Info is the payload stored for every indexed location.
type Info struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

//easyjson:json
type InfoList []Info

// Record is the on-disk form of a location.
type Record struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Kind string  `json:"kind"`
}

func (r Record) Info() Info {
	return Info{ID: r.ID, Name: r.Name, Kind: r.Kind}
}

//easyjson:json
type RecordList []Record

// Result is a location returned by a lookup.
type Result struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Distance float64 `json:"distance"`
	Info     Info    `json:"info"`
}

//easyjson:json
type ResultList []Result
