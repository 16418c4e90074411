package domain

type DemandFunnelInput struct {
	Universe      int64
	PotentialPct  float64
	AvailablePct  float64
	TargetPct     float64
	PenetratedPct float64
	Frequency     float64 // purchases per year
}

// FunnelLayer is one market layer. Share is the layer size as a percent of
// the universe.
type FunnelLayer struct {
	Name  string
	Size  int64
	Share float64
}

type DemandFunnel struct {
	Universe   int64
	Potential  FunnelLayer
	Available  FunnelLayer
	Target     FunnelLayer
	Penetrated FunnelLayer
	Demand     float64
}

// Layers returns the four filtered layers in funnel order.
func (f DemandFunnel) Layers() []FunnelLayer {
	return []FunnelLayer{f.Potential, f.Available, f.Target, f.Penetrated}
}
