package services

import (
	"errors"
	"fmt"
)

type pageKey struct {
	pid        int
	pageNumber int
}

// Verify chequea la consistencia entre marcos, lista de libres, algoritmo de
// reemplazo y tablas de páginas. Devuelve todos los problemas encontrados.
func (manager *MemoryManager) Verify() error {
	var problems []error

	owners := make(map[pageKey]int)
	ownedByPID := make(map[int]int)
	for i, frame := range manager.frames {
		if frame.Free {
			continue
		}
		key := pageKey{frame.PID, frame.PageNumber}
		if other, ok := owners[key]; ok {
			problems = append(problems, fmt.Errorf("PID %d página %d en los marcos %d y %d", frame.PID, frame.PageNumber, other, i))
		}
		owners[key] = i
		ownedByPID[frame.PID]++
	}

	free := make(map[int]bool)
	for _, frameNumber := range manager.freeFrames.GetAll() {
		if free[frameNumber] {
			problems = append(problems, fmt.Errorf("marco %d repetido en la lista de libres", frameNumber))
		}
		free[frameNumber] = true
		if !manager.frames[frameNumber].Free {
			problems = append(problems, fmt.Errorf("marco %d ocupado figura como libre", frameNumber))
		}
	}

	tracked := make(map[int]bool)
	for _, frameNumber := range manager.algorithm.Tracked() {
		if free[frameNumber] {
			problems = append(problems, fmt.Errorf("marco %d en la lista de libres y en el reemplazo", frameNumber))
		}
		if tracked[frameNumber] {
			problems = append(problems, fmt.Errorf("marco %d repetido en el reemplazo", frameNumber))
		}
		tracked[frameNumber] = true
	}

	for i, frame := range manager.frames {
		if frame.Free && !free[i] {
			problems = append(problems, fmt.Errorf("marco %d libre fuera de la lista de libres", i))
		}
		if !frame.Free && !tracked[i] {
			problems = append(problems, fmt.Errorf("marco %d ocupado sin seguimiento de reemplazo", i))
		}
	}

	for pid, table := range manager.pageTables {
		for _, pageNumber := range table.ResidentPages() {
			frameNumber, _ := table.Lookup(pageNumber)
			if frameNumber < 0 || frameNumber >= len(manager.frames) || !manager.frames[frameNumber].Holds(pid, pageNumber) {
				problems = append(problems, fmt.Errorf("PID %d página %d apunta al marco %d que no la contiene", pid, pageNumber, frameNumber))
			}
		}
		if resident := table.ResidentCount(); resident != ownedByPID[pid] {
			problems = append(problems, fmt.Errorf("PID %d tiene %d páginas residentes y %d marcos", pid, resident, ownedByPID[pid]))
		}
	}
	for pid := range ownedByPID {
		if _, ok := manager.pageTables[pid]; !ok {
			problems = append(problems, fmt.Errorf("PID %d ocupa marcos sin tabla de páginas registrada", pid))
		}
	}

	return errors.Join(problems...)
}
