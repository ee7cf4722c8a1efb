package config

const SERVER_YML = `
kard:
  baseURL: "http://localhost:3000"
  productionHost: ""
  cron:
    timeZone: "Asia/Riyadh"
  listener:
    port: 3000
  qr:
    mode: "link"
    size: 176
    logo: ""

site:
  name: "Digital Visiting Card"
  tagline: "Scan, save and stay in touch"
  companyInfo: "Green City Trading and Diamond Star Arabia Industrial Company."
  companyWebsite: "https://www.example.com"
  companyProfilePdf: "/company-profile.pdf"
  sections:
    - "GREEN CITY"
    - "DSA Group"
  defaultSection: "GREEN CITY"

data:
  contactsFile: "dev/data/contacts.json"

google:
  storage:
    bucket: "kard"
    object: "kard-dev/contacts.json"
    syncSchedule: "*/30 * * * *"
    enableDatasetSync: false
  applicationCredentials:
`
