package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Object is anything that can be intersected by a ray and moved by a transform.
// The variant set is Sphere, Plane, Triangle, PolyMesh, Quadratic and CSG.
type Object interface {
	// Intersect returns every crossing of the ray with the surface in
	// nondecreasing t order, including crossings behind the origin.
	Intersect(ray Ray) []Hit

	// ApplyTransform moves the object by an affine transform
	ApplyTransform(t Transform)

	// SetMaterial replaces the material the object owns
	SetMaterial(m Material)
}

// Material decides what happens to light arriving at a hit.
// The variant set is Diffuse, Metallic, Dielectric, Phong, NormalShading,
// Compound and Global.
type Material interface {
	// Compute returns the radiance seen along hit.Incident. viewer points
	// from the hit towards the eye. recurse is the remaining bounce budget
	// and env is the scene being rendered, passed explicitly so materials
	// can recurse without holding a reference to it.
	Compute(viewer Vec3, hit *Hit, recurse int, env Environment, sampler Sampler) Vec3

	// Interact samples the fate of a photon arriving at the hit
	Interact(hit *Hit, sampler Sampler) Interaction
}

// Transmissive is implemented by materials that let light through.
// Transmissive surfaces do not occlude shadow rays.
type Transmissive interface {
	Transmissive() bool
}

// IsTransmissive reports whether m lets light through
func IsTransmissive(m Material) bool {
	t, ok := m.(Transmissive)
	return ok && t.Transmissive()
}

// Light is a source of direct illumination
type Light interface {
	// Direction returns the unit direction from surface towards the light
	// and whether the surface is on the lit side of the light.
	Direction(surface Vec3) (Vec3, bool)

	// Intensity returns the radiance arriving at surface
	Intensity(surface Vec3) Vec3

	// Distance returns how far the light is from surface (+Inf if it has no position)
	Distance(surface Vec3) float64
}

// PhotonSource is implemented by lights that have a position to emit photons from
type PhotonSource interface {
	GeneratePhoton(sampler Sampler) Photon
}

// PhotonEstimator answers density queries against a built photon map
type PhotonEstimator interface {
	// Visualise returns the average colour and count of the photons near position
	Visualise(position Vec3) (Vec3, int)

	// Estimate returns the indirect irradiance estimate at position
	Estimate(position Vec3) Vec3
}

// Environment is the read-only view of a scene that materials recurse into
type Environment interface {
	// Raytrace returns the radiance and hit distance along ray
	Raytrace(ray Ray, recurse int, sampler Sampler) (Vec3, float64)

	// ShadowTrace reports whether an opaque surface lies strictly between 0 and limit along ray
	ShadowTrace(ray Ray, limit float64) bool

	// Lights returns the scene's lights
	Lights() []Light

	// PhotonMap returns the attached photon map, or nil
	PhotonMap() PhotonEstimator
}
