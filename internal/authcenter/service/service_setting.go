// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"errors"

	"github.com/go-arcade/authcenter/internal/authcenter/model"
	"github.com/go-arcade/authcenter/internal/authcenter/repo"
)

// SettingService reads and writes scoped key/value settings. Reads fall
// back from the narrowest scope outward: user, then tenant, then host.
type SettingService struct {
	settingRepo repo.ISettingRepository
}

func NewSettingService(settingRepo repo.ISettingRepository) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
	}
}

// GetValue resolves a setting with scope fallback. A missing name at every
// scope returns repo.ErrNotFound.
func (ss *SettingService) GetValue(tenantId, userId *int64, name string) (string, error) {
	if userId != nil {
		s, err := ss.settingRepo.GetSetting(tenantId, userId, name)
		if err == nil {
			return s.Value, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return "", err
		}
	}
	if tenantId != nil {
		s, err := ss.settingRepo.GetSetting(tenantId, nil, name)
		if err == nil {
			return s.Value, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return "", err
		}
	}
	s, err := ss.settingRepo.GetSetting(nil, nil, name)
	if err != nil {
		return "", err
	}
	return s.Value, nil
}

// SetValue writes a setting in exactly one scope
func (ss *SettingService) SetValue(tenantId, userId *int64, name, value string) error {
	return ss.settingRepo.SetSetting(&model.Setting{
		TenantId: tenantId,
		UserId:   userId,
		Name:     name,
		Value:    value,
	})
}

// List lists every setting in one scope
func (ss *SettingService) List(tenantId, userId *int64) ([]model.Setting, error) {
	return ss.settingRepo.ListSettings(tenantId, userId)
}

// Delete removes a setting from one scope
func (ss *SettingService) Delete(tenantId, userId *int64, name string) error {
	return ss.settingRepo.DeleteSetting(tenantId, userId, name)
}
