package state

import "github.com/BVTRay/vioflow/internal/domain/delivery"

// Checklist and delivery-package transitions. Checklists are only created by
// the finalize transition; events targeting a project without one are no-ops.

func applyUpdateChecklistField(s Snapshot, ev UpdateChecklistField) (Snapshot, bool) {
	if !delivery.ValidField(ev.Field) {
		return s, false
	}
	cl, ok := s.Checklists[ev.ProjectID]
	if !ok || cl.Flag(ev.Field) == ev.Value {
		return s, false
	}
	checklists := s.cloneChecklists()
	checklists[ev.ProjectID] = cl.WithFlag(ev.Field, ev.Value)
	s.Checklists = checklists
	return s, true
}

func applyUpdateChecklistNote(s Snapshot, ev UpdateChecklistNote) (Snapshot, bool) {
	cl, ok := s.Checklists[ev.ProjectID]
	if !ok || cl.Note == ev.Note {
		return s, false
	}
	cl.Note = ev.Note
	checklists := s.cloneChecklists()
	checklists[ev.ProjectID] = cl
	s.Checklists = checklists
	return s, true
}

func applySetDeliveryInfo(s Snapshot, ev SetDeliveryInfo) (Snapshot, bool) {
	cl, ok := s.Checklists[ev.ProjectID]
	if !ok {
		return s, false
	}
	cl.Title = ev.Title
	cl.Description = ev.Description
	checklists := s.cloneChecklists()
	checklists[ev.ProjectID] = cl
	s.Checklists = checklists
	return s, true
}

func applyAddDeliveryPackage(s Snapshot, ev AddDeliveryPackage) (Snapshot, bool) {
	cl, ok := s.Checklists[ev.ProjectID]
	if !ok || ev.Package.ID == "" {
		return s, false
	}
	for _, pkg := range cl.Packages {
		if pkg.ID == ev.Package.ID {
			return s, false
		}
	}
	packages := make([]delivery.Package, len(cl.Packages), len(cl.Packages)+1)
	copy(packages, cl.Packages)
	cl.Packages = append(packages, ev.Package)
	checklists := s.cloneChecklists()
	checklists[ev.ProjectID] = cl
	s.Checklists = checklists
	return s, true
}

func applyRecordDownload(s Snapshot, ev RecordDownload) (Snapshot, bool) {
	return updatePackage(s, ev.ProjectID, ev.PackageID, func(pkg delivery.Package) (delivery.Package, bool) {
		pkg.Downloads++
		return pkg, true
	})
}

func applySetPackageActive(s Snapshot, ev SetPackageActive) (Snapshot, bool) {
	return updatePackage(s, ev.ProjectID, ev.PackageID, func(pkg delivery.Package) (delivery.Package, bool) {
		if pkg.Active == ev.Active {
			return pkg, false
		}
		pkg.Active = ev.Active
		return pkg, true
	})
}

func updatePackage(s Snapshot, projectID, packageID string, fn func(delivery.Package) (delivery.Package, bool)) (Snapshot, bool) {
	cl, ok := s.Checklists[projectID]
	if !ok {
		return s, false
	}
	for i, pkg := range cl.Packages {
		if pkg.ID != packageID {
			continue
		}
		updated, changed := fn(pkg)
		if !changed {
			return s, false
		}
		packages := make([]delivery.Package, len(cl.Packages))
		copy(packages, cl.Packages)
		packages[i] = updated
		cl.Packages = packages
		checklists := s.cloneChecklists()
		checklists[projectID] = cl
		s.Checklists = checklists
		return s, true
	}
	return s, false
}
